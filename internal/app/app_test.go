package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/riskibarqy/fconline-tracker/external/nexon"
	"github.com/riskibarqy/fconline-tracker/internal/config"
	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
	"github.com/riskibarqy/fconline-tracker/internal/infrastructure/staticdata"
	"github.com/riskibarqy/fconline-tracker/internal/platform/cache"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
	"github.com/riskibarqy/fconline-tracker/internal/usecase"
)

func TestOpenCache_Memory(t *testing.T) {
	got, closeFn, err := openCache(context.Background(), config.Config{CacheBackend: config.CacheBackendMemory})
	if err != nil {
		t.Fatalf("open memory cache: %v", err)
	}
	if closeFn != nil {
		t.Fatalf("memory cache needs no closer")
	}
	if _, ok := got.(*cache.Store); !ok {
		t.Fatalf("unexpected cache type %T", got)
	}
}

func TestOpenCache_Redis(t *testing.T) {
	srv := miniredis.RunT(t)

	got, closeFn, err := openCache(context.Background(), config.Config{
		CacheBackend: config.CacheBackendRedis,
		RedisAddr:    srv.Addr(),
	})
	if err != nil {
		t.Fatalf("open redis cache: %v", err)
	}
	defer func() { _ = closeFn() }()

	if _, ok := got.(*cache.RedisStore); !ok {
		t.Fatalf("unexpected cache type %T", got)
	}
}

func TestOpenCache_RedisUnreachable(t *testing.T) {
	srv := miniredis.NewMiniRedis()
	if err := srv.Start(); err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := srv.Addr()
	srv.Close()

	if _, _, err := openCache(context.Background(), config.Config{
		CacheBackend: config.CacheBackendRedis,
		RedisAddr:    addr,
	}); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}

func TestOpenCache_UnknownBackend(t *testing.T) {
	if _, _, err := openCache(context.Background(), config.Config{CacheBackend: "memcached"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func newOfflineContainer(t *testing.T, handler http.HandlerFunc) *Container {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logging.NewNop()
	c := &Container{
		Logger:      logger,
		staticFiles: staticdata.NewLoader(t.TempDir()),
		remote: nexon.NewClient(nexon.ClientConfig{
			HTTPClient: srv.Client(),
			BaseURL:    srv.URL,
			Logger:     logger,
		}),
	}
	c.Metadata = usecase.NewMetadataStore(usecase.MetadataStoreConfig{
		Cache:  cache.NewStore(),
		File:   c.staticFiles,
		Remote: c.remote,
		Logger: logger,
	})
	return c
}

func TestContainer_SyncStaticFilesThenWarm(t *testing.T) {
	var remoteCalls atomic.Int32
	c := newOfflineContainer(t, func(w http.ResponseWriter, r *http.Request) {
		remoteCalls.Add(1)
		if strings.HasSuffix(r.URL.Path, "/position.json") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[{"id":100,"seasonId":100,"matchtype":50,"divisionId":800,"name":"x"}]`))
	})

	saved, failed := c.SyncStaticFiles(context.Background())
	if len(saved) != 4 || len(failed) != 1 || failed[0] != metadata.TablePosition {
		t.Fatalf("unexpected sync result: saved=%v failed=%v", saved, failed)
	}
	callsAfterSync := remoteCalls.Load()

	report := c.WarmMetadata(context.Background())
	if report.LoadedCount() != 4 || report.OK() {
		t.Fatalf("unexpected warmup report: %+v", report)
	}
	// four tables come from the saved files; only position goes remote again
	if got := remoteCalls.Load() - callsAfterSync; got != 1 {
		t.Fatalf("expected one remote call during warmup, got %d", got)
	}
}

func TestContainer_CloseRunsClosersInReverse(t *testing.T) {
	var order []string
	c := &Container{closers: []func() error{
		func() error { order = append(order, "db"); return nil },
		func() error { order = append(order, "cache"); return errors.New("boom") },
	}}

	if err := c.Close(); err == nil {
		t.Fatalf("expected close error")
	}
	if strings.Join(order, ",") != "cache,db" {
		t.Fatalf("unexpected close order: %v", order)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}
