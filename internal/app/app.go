package app

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fconline-tracker/external/nexon"
	"github.com/riskibarqy/fconline-tracker/internal/config"
	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
	"github.com/riskibarqy/fconline-tracker/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fconline-tracker/internal/infrastructure/staticdata"
	"github.com/riskibarqy/fconline-tracker/internal/platform/cache"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
	"github.com/riskibarqy/fconline-tracker/internal/platform/resilience"
	"github.com/riskibarqy/fconline-tracker/internal/usecase"
)

// Container holds the wired services used by the CLI commands.
type Container struct {
	Config config.Config
	Logger *logging.Logger

	Cache         usecase.Cache
	Metadata      *usecase.MetadataStore
	Names         *usecase.NameResolver
	PlayerCache   *usecase.PlayerCacheService
	PlayerNames   *usecase.PlayerNameService
	ShotReextract *usecase.ShotReextractService

	staticFiles *staticdata.Loader
	remote      *nexon.Client
	closers     []func() error
}

// New connects the database and shared cache and builds every service. Any
// setup failure is returned; partially opened resources are closed.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, db.Close)

	sharedCache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if closeCache != nil {
		c.closers = append(c.closers, closeCache)
	}
	c.Cache = sharedCache

	c.staticFiles = staticdata.NewLoader(cfg.MetadataStaticDir)
	c.remote = nexon.NewClient(nexon.ClientConfig{
		BaseURL: cfg.MetadataBaseURL,
		Timeout: cfg.MetadataTimeout,
		Logger:  logger.Named("nexon"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MetadataCircuitEnabled,
			FailureThreshold: cfg.MetadataCircuitFailureCount,
			OpenTimeout:      cfg.MetadataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MetadataCircuitHalfOpenReq,
		},
	})

	c.Metadata = usecase.NewMetadataStore(usecase.MetadataStoreConfig{
		Cache:  sharedCache,
		File:   c.staticFiles,
		Remote: c.remote,
		TTL:    cfg.MetadataCacheTTL,
		Logger: logger.Named("metadata"),
	})
	c.Names = usecase.NewNameResolver(c.Metadata)

	matchRepo := postgres.NewMatchRepository(db)
	performanceRepo := postgres.NewPerformanceRepository(db)
	shotRepo := postgres.NewShotRepository(db)

	c.PlayerCache = usecase.NewPlayerCacheService(usecase.PlayerCacheServiceConfig{
		Matches:       matchRepo,
		Performances:  performanceRepo,
		Cache:         sharedCache,
		ProgressEvery: cfg.JobProgressEvery,
		Logger:        logger,
	})
	c.PlayerNames = usecase.NewPlayerNameService(performanceRepo, c.Names, cfg.JobProgressEvery, logger)
	c.ShotReextract = usecase.NewShotReextractService(
		matchRepo,
		usecase.NewShotExtractionService(shotRepo),
		cfg.JobProgressEvery,
		logger,
	)

	return c, nil
}

// WarmMetadata loads every metadata table once and logs the outcome per table.
func (c *Container) WarmMetadata(ctx context.Context) usecase.WarmupReport {
	report := c.Metadata.Warmup(ctx)
	for _, item := range report.Tables {
		if item.Loaded {
			c.Logger.InfoContext(ctx, "metadata table ready", "table", item.Table, "items", item.Items)
			continue
		}
		c.Logger.WarnContext(ctx, "metadata table unavailable", "table", item.Table)
	}
	c.Logger.InfoContext(ctx, "metadata warmup finished",
		"loaded", report.LoadedCount(),
		"total", len(report.Tables),
		"ok", report.OK(),
	)
	return report
}

// SyncStaticFiles downloads every table from the remote API into the local
// static directory. Tables that fail are reported and skipped.
func (c *Container) SyncStaticFiles(ctx context.Context) (saved []metadata.TableName, failed []metadata.TableName) {
	for _, name := range metadata.Tables {
		table, err := c.remote.FetchTable(ctx, name)
		if err == nil {
			err = c.staticFiles.Save(name, table)
		}
		if err != nil {
			c.Logger.ErrorContext(ctx, "sync static metadata failed", "table", name, "error", err)
			failed = append(failed, name)
			continue
		}
		c.Logger.InfoContext(ctx, "static metadata saved", "table", name, "items", len(table), "path", c.staticFiles.Path(name))
		saved = append(saved, name)
	}
	return saved, failed
}

func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	if len(errs) > 0 {
		return errors.Wrap(errors.Join(errs...), "close app resources")
	}
	return nil
}

func openCache(ctx context.Context, cfg config.Config) (usecase.Cache, func() error, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		return cache.NewStore(), nil, nil
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := cache.NewRedisStore(client)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return store, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}
