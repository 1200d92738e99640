package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fconline-tracker/internal/domain/match"
	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
)

// Cache is the shared key/value store. ttl <= 0 stores without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MetadataSource yields a whole metadata table from one origin.
type MetadataSource interface {
	FetchTable(ctx context.Context, name metadata.TableName) (metadata.Table, error)
}

// ShotExtractor derives and persists shot rows for one owner of a match.
type ShotExtractor interface {
	Extract(ctx context.Context, m match.Match, ownerOUID string) (int, error)
}
