package performance

// PlayerPerformance is one player's line in a stored match.
type PlayerPerformance struct {
	ID         int64
	MatchID    int64
	OUID       string
	SpID       int64
	PlayerName string
	Position   int
	Grade      int
	Rating     float64
}
