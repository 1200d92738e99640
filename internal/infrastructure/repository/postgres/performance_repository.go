package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fconline-tracker/internal/domain/performance"
	qb "github.com/riskibarqy/fconline-tracker/internal/platform/querybuilder"
)

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) ListByNamePrefix(ctx context.Context, prefix string, limit int) ([]performance.PlayerPerformance, error) {
	query, args, err := qb.Select(
		"id",
		"match_id",
		"ouid",
		"spid",
		"player_name",
		"position",
		"grade",
		"rating",
	).From("player_performances").
		Where(qb.Expr(`player_name LIKE ? ESCAPE '\'`, prefixPattern(prefix))).
		OrderBy("id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select performances by name prefix query: %w", err)
	}

	var rows []playerPerformanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select performances by name prefix: %w", err)
	}

	out := make([]performance.PlayerPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performance.PlayerPerformance{
			ID:         row.ID,
			MatchID:    row.MatchID,
			OUID:       row.OUID,
			SpID:       row.SpID,
			PlayerName: row.PlayerName,
			Position:   row.Position,
			Grade:      row.Grade,
			Rating:     row.Rating.Float64,
		})
	}
	return out, nil
}

func (r *PerformanceRepository) UpdateName(ctx context.Context, id int64, name string) error {
	query, args, err := qb.Update("player_performances").
		Set("player_name", name).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update performance name query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update performance name id=%d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows for performance id=%d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("player performance id=%d not found", id)
	}
	return nil
}
