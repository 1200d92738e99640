package match

import "context"

// Repository exposes match reads used by the repair jobs.
type Repository interface {
	ListWithRawData(ctx context.Context, filter Filter) ([]Match, error)
}
