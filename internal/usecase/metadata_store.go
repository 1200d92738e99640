package usecase

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
	"github.com/riskibarqy/fconline-tracker/internal/platform/resilience"
)

const DefaultMetadataTTL = 24 * time.Hour

type MetadataStoreConfig struct {
	Cache  Cache
	File   MetadataSource
	Remote MetadataSource
	TTL    time.Duration
	Logger *logging.Logger
}

// MetadataStore resolves metadata tables through cache, local file, then remote API.
type MetadataStore struct {
	cache  Cache
	file   MetadataSource
	remote MetadataSource
	ttl    time.Duration
	logger *logging.Logger
	flight resilience.Group[metadata.Table]
}

func NewMetadataStore(cfg MetadataStoreConfig) *MetadataStore {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}

	return &MetadataStore{
		cache:  cfg.Cache,
		file:   cfg.File,
		remote: cfg.Remote,
		ttl:    ttl,
		logger: logger,
	}
}

// Load returns the table, or nil without error when no origin could serve it.
// An unknown table name is the only error.
func (s *MetadataStore) Load(ctx context.Context, name metadata.TableName) (metadata.Table, error) {
	if !name.Valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown metadata table %q", name)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.MetadataStore.Load")
	defer span.End()

	if table, ok := s.fromCache(ctx, name); ok {
		return table, nil
	}

	table, _, _ := s.flight.Do(string(name), func() (metadata.Table, error) {
		if table, ok := s.fromCache(ctx, name); ok {
			return table, nil
		}
		return s.fromOrigins(ctx, name), nil
	})
	return table, nil
}

// Index loads the table and keys it by the table's id field. A nil map means
// the table is unavailable.
func (s *MetadataStore) Index(ctx context.Context, name metadata.TableName) (map[int64]metadata.Record, error) {
	table, err := s.Load(ctx, name)
	if err != nil || table == nil {
		return nil, err
	}
	return table.Index(name.KeyField()), nil
}

func (s *MetadataStore) fromCache(ctx context.Context, name metadata.TableName) (metadata.Table, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, ok, err := s.cache.Get(ctx, name.CacheKey())
	if err != nil {
		s.logger.WarnContext(ctx, "metadata cache read failed", "table", name, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var table metadata.Table
	if err := sonic.Unmarshal(raw, &table); err != nil {
		s.logger.WarnContext(ctx, "metadata cache entry is corrupt", "table", name, "error", err)
		return nil, false
	}
	if table == nil {
		return nil, false
	}
	return table, true
}

func (s *MetadataStore) fromOrigins(ctx context.Context, name metadata.TableName) metadata.Table {
	if s.file != nil {
		table, err := fetchNonEmpty(ctx, s.file, name)
		if err == nil {
			s.logger.InfoContext(ctx, "metadata loaded from local file", "table", name, "items", len(table))
			s.store(ctx, name, table)
			return table
		}
		s.logger.DebugContext(ctx, "metadata local file unavailable", "table", name, "error", err)
	}

	if s.remote != nil {
		table, err := fetchNonEmpty(ctx, s.remote, name)
		if err == nil {
			s.logger.InfoContext(ctx, "metadata loaded from remote api", "table", name, "items", len(table))
			s.store(ctx, name, table)
			return table
		}
		s.logger.WarnContext(ctx, "metadata remote fetch failed", "table", name, "error", err)
	}

	s.logger.ErrorContext(ctx, "metadata unavailable", "table", name)
	return nil
}

// fetchNonEmpty treats a decoded JSON null as a failed origin.
func fetchNonEmpty(ctx context.Context, source MetadataSource, name metadata.TableName) (metadata.Table, error) {
	table, err := source.FetchTable(ctx, name)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, errors.Newf("metadata table %s decoded to null", name)
	}
	return table, nil
}

func (s *MetadataStore) store(ctx context.Context, name metadata.TableName, table metadata.Table) {
	if s.cache == nil || table == nil {
		return
	}

	raw, err := sonic.Marshal(table)
	if err != nil {
		s.logger.WarnContext(ctx, "encode metadata for cache failed", "table", name, "error", err)
		return
	}
	if err := s.cache.Set(ctx, name.CacheKey(), raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "metadata cache write failed", "table", name, "error", err)
	}
}

// Invalidate drops cached copies so the next Load re-reads file/remote.
func (s *MetadataStore) Invalidate(ctx context.Context, names ...metadata.TableName) error {
	if s.cache == nil {
		return nil
	}
	for _, name := range names {
		if !name.Valid() {
			return errors.Wrapf(ErrInvalidArgument, "unknown metadata table %q", name)
		}
		if err := s.cache.Delete(ctx, name.CacheKey()); err != nil {
			return errors.Wrapf(err, "invalidate metadata table %s", name)
		}
	}
	return nil
}

type TableWarmup struct {
	Table  metadata.TableName `json:"table"`
	Items  int                `json:"items"`
	Loaded bool               `json:"loaded"`
}

type WarmupReport struct {
	Tables []TableWarmup `json:"tables"`
}

func (r WarmupReport) OK() bool {
	for _, item := range r.Tables {
		if !item.Loaded {
			return false
		}
	}
	return len(r.Tables) > 0
}

func (r WarmupReport) LoadedCount() int {
	count := 0
	for _, item := range r.Tables {
		if item.Loaded {
			count++
		}
	}
	return count
}

// Warmup loads every table once and reports per-table outcome. It never fails;
// callers decide whether a partial report is acceptable.
func (s *MetadataStore) Warmup(ctx context.Context) WarmupReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.MetadataStore.Warmup")
	defer span.End()

	report := WarmupReport{Tables: make([]TableWarmup, 0, len(metadata.Tables))}
	for _, name := range metadata.Tables {
		table, err := s.Load(ctx, name)
		item := TableWarmup{Table: name}
		if err == nil && table != nil {
			item.Items = len(table)
			item.Loaded = true
		}
		report.Tables = append(report.Tables, item)
	}
	return report
}
