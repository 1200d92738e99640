package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fconline-tracker/internal/domain/shot"
	qb "github.com/riskibarqy/fconline-tracker/internal/platform/querybuilder"
)

type ShotRepository struct {
	db *sqlx.DB
}

func NewShotRepository(db *sqlx.DB) *ShotRepository {
	return &ShotRepository{db: db}
}

// ReplaceForMatch swaps every shot row of (matchID, ouid) for items in one transaction.
func (r *ShotRepository) ReplaceForMatch(ctx context.Context, matchID int64, ouid string, items []shot.Detail) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace shots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("shot_details").
		Where(qb.Eq("match_id", matchID), qb.Eq("ouid", ouid)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete shots query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete shots match=%d ouid=%s: %w", matchID, ouid, err)
	}

	if len(items) > 0 {
		query, args, err := buildInsertShotsQuery(matchID, ouid, items)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert shots match=%d ouid=%s: %w", matchID, ouid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace shots tx: %w", err)
	}
	return nil
}

func buildInsertShotsQuery(matchID int64, ouid string, items []shot.Detail) (string, []any, error) {
	rows := make([]shotDetailInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, shotDetailInsertModel{
			MatchID:    matchID,
			OUID:       ouid,
			SpID:       item.SpID,
			GoalTime:   item.GoalTime,
			Period:     int(item.Period),
			Minute:     item.Minute,
			Second:     item.Second,
			X:          item.X,
			Y:          item.Y,
			ShotType:   item.Type,
			Result:     item.Result,
			AssistSpID: nullableInt64(item.AssistSpID),
			HitPost:    item.HitPost,
			InPenalty:  item.InPenalty,
		})
	}

	query, args, err := qb.InsertModels("shot_details", rows, "")
	if err != nil {
		return "", nil, fmt.Errorf("build insert shots query: %w", err)
	}
	return query, args, nil
}
