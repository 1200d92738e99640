package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fconline-tracker/internal/domain/match"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
)

type ReextractShotsInput struct {
	Nickname  string `validate:"omitempty,max=64"`
	MatchType int    `validate:"gte=0"`
	// DryRun counts candidates without touching stored shots.
	DryRun bool
}

type ReextractShotsResult struct {
	Candidates int  `json:"candidates"`
	Succeeded  int  `json:"succeeded"`
	Failed     int  `json:"failed"`
	Shots      int  `json:"shots"`
	DryRun     bool `json:"dry_run"`
}

// ShotReextractService re-derives shot rows from stored payloads.
type ShotReextractService struct {
	matches       match.Repository
	extractor     ShotExtractor
	progressEvery int
	logger        *logging.Logger
}

func NewShotReextractService(matches match.Repository, extractor ShotExtractor, progressEvery int, logger *logging.Logger) *ShotReextractService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ShotReextractService{
		matches:       matches,
		extractor:     extractor,
		progressEvery: progressEvery,
		logger:        logger.Named("reextract_shots"),
	}
}

func (s *ShotReextractService) Run(ctx context.Context, input ReextractShotsInput) (ReextractShotsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShotReextractService.Run")
	defer span.End()

	input.Nickname = strings.TrimSpace(input.Nickname)
	result := ReextractShotsResult{DryRun: input.DryRun}
	if err := inputValidator.Struct(input); err != nil {
		return result, errors.Wrapf(ErrInvalidArgument, "reextract shots: %v", err)
	}

	matches, err := s.matches.ListWithRawData(ctx, match.Filter{
		Nickname:  input.Nickname,
		MatchType: input.MatchType,
	})
	if err != nil {
		return result, fmt.Errorf("list matches with raw data: %w", err)
	}
	result.Candidates = len(matches)
	s.logger.InfoContext(ctx, "matches selected for shot re-extraction",
		"count", len(matches),
		"nickname", input.Nickname,
		"match_type", input.MatchType,
		"dry_run", input.DryRun,
	)
	if input.DryRun {
		return result, nil
	}

	progress := newJobProgress(s.logger, s.progressEvery, len(matches))
	for i, m := range matches {
		count, err := s.extractor.Extract(ctx, m, m.OwnerOUID)
		if err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "shot re-extraction failed", "match_id", m.ID, "provider_match_id", m.MatchID, "error", err)
		} else {
			result.Succeeded++
			result.Shots += count
		}
		progress.step(ctx, i+1, "succeeded", result.Succeeded, "failed", result.Failed)
	}

	return result, nil
}
