package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fconline-tracker/internal/domain/match"
	qb "github.com/riskibarqy/fconline-tracker/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListWithRawData(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Expr("raw_data IS NOT NULL"),
		qb.Expr("raw_data::text NOT IN ('', 'null', '{}')"),
	}
	if nickname := strings.TrimSpace(filter.Nickname); nickname != "" {
		conditions = append(conditions, qb.Eq("owner_nickname", nickname))
	}
	if filter.MatchType > 0 {
		conditions = append(conditions, qb.Eq("match_type", filter.MatchType))
	}

	query, args, err := qb.Select(
		"id",
		"match_id",
		"match_type",
		"match_date",
		"owner_ouid",
		"owner_nickname",
		"raw_data::text AS raw_data",
	).From("matches").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches with raw data query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches with raw data: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.ID,
		MatchID:       row.MatchID,
		MatchType:     row.MatchType,
		MatchDate:     row.MatchDate,
		OwnerOUID:     row.OwnerOUID,
		OwnerNickname: row.OwnerNickname,
		RawData:       nullStringToString(row.RawData),
	}
}
