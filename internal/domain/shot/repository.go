package shot

import "context"

// Repository persists shot rows derived from a match payload.
type Repository interface {
	// ReplaceForMatch swaps all rows of (matchID, ouid) for items atomically.
	ReplaceForMatch(ctx context.Context, matchID int64, ouid string, items []Detail) error
}
