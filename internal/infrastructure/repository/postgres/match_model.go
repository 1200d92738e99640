package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	MatchID       string         `db:"match_id"`
	MatchType     int            `db:"match_type"`
	MatchDate     time.Time      `db:"match_date"`
	OwnerOUID     string         `db:"owner_ouid"`
	OwnerNickname string         `db:"owner_nickname"`
	RawData       sql.NullString `db:"raw_data"`
}
