package performance

import "context"

// Repository exposes the performance reads and writes used by name repair.
type Repository interface {
	// ListByNamePrefix returns rows whose player_name starts with prefix, ordered by id.
	// limit <= 0 means no limit.
	ListByNamePrefix(ctx context.Context, prefix string, limit int) ([]PlayerPerformance, error)
	UpdateName(ctx context.Context, id int64, name string) error
}
