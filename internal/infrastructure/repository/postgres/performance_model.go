package postgres

import "database/sql"

type playerPerformanceTableModel struct {
	ID         int64           `db:"id"`
	MatchID    int64           `db:"match_id"`
	OUID       string          `db:"ouid"`
	SpID       int64           `db:"spid"`
	PlayerName string          `db:"player_name"`
	Position   int             `db:"position"`
	Grade      int             `db:"grade"`
	Rating     sql.NullFloat64 `db:"rating"`
}
