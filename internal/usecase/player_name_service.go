package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fconline-tracker/internal/domain/performance"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
)

type UpdatePlayerNamesInput struct {
	// Limit caps how many placeholder rows are processed; 0 means all.
	Limit int `validate:"gte=0"`
}

type UpdatePlayerNamesResult struct {
	Candidates int `json:"candidates"`
	Updated    int `json:"updated"`
	Unresolved int `json:"unresolved"`
	Failed     int `json:"failed"`
}

type playerNameResolver interface {
	PlayerName(ctx context.Context, spID int64) string
}

// PlayerNameService replaces "Unknown Player" names with resolved metadata names.
type PlayerNameService struct {
	performances  performance.Repository
	resolver      playerNameResolver
	progressEvery int
	logger        *logging.Logger
}

func NewPlayerNameService(performances performance.Repository, resolver *NameResolver, progressEvery int, logger *logging.Logger) *PlayerNameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerNameService{
		performances:  performances,
		resolver:      resolver,
		progressEvery: progressEvery,
		logger:        logger.Named("update_player_names"),
	}
}

func (s *PlayerNameService) Update(ctx context.Context, input UpdatePlayerNamesInput) (UpdatePlayerNamesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerNameService.Update")
	defer span.End()

	var result UpdatePlayerNamesResult
	if err := inputValidator.Struct(input); err != nil {
		return result, errors.Wrapf(ErrInvalidArgument, "update player names: %v", err)
	}

	rows, err := s.performances.ListByNamePrefix(ctx, UnknownPlayerPrefix, input.Limit)
	if err != nil {
		return result, fmt.Errorf("list unresolved performances: %w", err)
	}
	result.Candidates = len(rows)
	s.logger.InfoContext(ctx, "unresolved player names found", "count", len(rows), "limit", input.Limit)

	progress := newJobProgress(s.logger, s.progressEvery, len(rows))
	for i, row := range rows {
		name := s.resolver.PlayerName(ctx, row.SpID)
		switch {
		case name == "" || IsUnresolved(name, KindPlayer):
			result.Unresolved++
		default:
			if err := s.performances.UpdateName(ctx, row.ID, name); err != nil {
				result.Failed++
				s.logger.ErrorContext(ctx, "update performance name failed", "performance_id", row.ID, "spid", row.SpID, "error", err)
			} else {
				result.Updated++
			}
		}
		progress.step(ctx, i+1, "updated", result.Updated, "unresolved", result.Unresolved)
	}

	return result, nil
}
