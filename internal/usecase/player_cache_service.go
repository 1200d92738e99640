package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fconline-tracker/internal/domain/match"
	"github.com/riskibarqy/fconline-tracker/internal/domain/performance"
	"github.com/riskibarqy/fconline-tracker/internal/platform/logging"
)

// PlayerSpIDMappingKey holds the spid -> placeholder name map, stored without expiry.
const PlayerSpIDMappingKey = "player_spid_mapping"

// ObservedPlayerName is the generic label given to every spid seen in a match
// payload. It is not a resolved name.
func ObservedPlayerName(spID int64) string {
	return "선수 " + strconv.FormatInt(spID, 10)
}

type BuildPlayerCacheResult struct {
	MatchesScanned   int `json:"matches_scanned"`
	MatchesFailed    int `json:"matches_failed"`
	PlayersMapped    int `json:"players_mapped"`
	CandidateRecords int `json:"candidate_records"`
	UpdatedRecords   int `json:"updated_records"`
	FailedRecords    int `json:"failed_records"`
}

type PlayerCacheServiceConfig struct {
	Matches       match.Repository
	Performances  performance.Repository
	Cache         Cache
	ProgressEvery int
	Logger        *logging.Logger
}

// PlayerCacheService builds the observed-spid mapping and backfills placeholder names.
type PlayerCacheService struct {
	matches       match.Repository
	performances  performance.Repository
	cache         Cache
	progressEvery int
	logger        *logging.Logger
}

func NewPlayerCacheService(cfg PlayerCacheServiceConfig) *PlayerCacheService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerCacheService{
		matches:       cfg.Matches,
		performances:  cfg.Performances,
		cache:         cfg.Cache,
		progressEvery: cfg.ProgressEvery,
		logger:        logger.Named("build_player_cache"),
	}
}

func (s *PlayerCacheService) Build(ctx context.Context) (BuildPlayerCacheResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerCacheService.Build")
	defer span.End()

	var result BuildPlayerCacheResult

	matches, err := s.matches.ListWithRawData(ctx, match.Filter{})
	if err != nil {
		return result, fmt.Errorf("list matches with raw data: %w", err)
	}

	mapping := make(map[int64]string, 1024)
	progress := newJobProgress(s.logger, s.progressEvery, len(matches))
	for i, m := range matches {
		result.MatchesScanned++
		spIDs, err := extractSpIDs(m.RawData)
		if err != nil {
			result.MatchesFailed++
			s.logger.WarnContext(ctx, "skip match with unreadable payload", "match_id", m.ID, "error", err)
		}
		for _, spID := range spIDs {
			mapping[spID] = ObservedPlayerName(spID)
		}
		progress.step(ctx, i+1, "players_mapped", len(mapping))
	}
	result.PlayersMapped = len(mapping)

	if err := s.storeMapping(ctx, mapping); err != nil {
		return result, err
	}
	s.logger.InfoContext(ctx, "player spid mapping cached", "players", len(mapping), "key", PlayerSpIDMappingKey)

	rows, err := s.performances.ListByNamePrefix(ctx, UnknownPlayerPrefix, 0)
	if err != nil {
		return result, fmt.Errorf("list unresolved performances: %w", err)
	}
	result.CandidateRecords = len(rows)

	progress = newJobProgress(s.logger, s.progressEvery, len(rows))
	for i, row := range rows {
		name, ok := mapping[row.SpID]
		if ok {
			if err := s.performances.UpdateName(ctx, row.ID, name); err != nil {
				result.FailedRecords++
				s.logger.ErrorContext(ctx, "update performance name failed", "performance_id", row.ID, "spid", row.SpID, "error", err)
			} else {
				result.UpdatedRecords++
			}
		}
		progress.step(ctx, i+1, "updated", result.UpdatedRecords)
	}

	return result, nil
}

func (s *PlayerCacheService) storeMapping(ctx context.Context, mapping map[int64]string) error {
	encoded := make(map[string]string, len(mapping))
	for spID, name := range mapping {
		encoded[strconv.FormatInt(spID, 10)] = name
	}
	raw, err := sonic.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("encode player spid mapping: %w", err)
	}
	if err := s.cache.Set(ctx, PlayerSpIDMappingKey, raw, 0); err != nil {
		return fmt.Errorf("cache player spid mapping: %w", err)
	}
	return nil
}

// LoadPlayerSpIDMapping reads back the mapping written by Build.
func LoadPlayerSpIDMapping(ctx context.Context, cache Cache) (map[int64]string, bool, error) {
	raw, ok, err := cache.Get(ctx, PlayerSpIDMappingKey)
	if err != nil || !ok {
		return nil, false, err
	}

	var encoded map[string]string
	if err := sonic.Unmarshal(raw, &encoded); err != nil {
		return nil, false, fmt.Errorf("decode player spid mapping: %w", err)
	}

	out := make(map[int64]string, len(encoded))
	for key, name := range encoded {
		spID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		out[spID] = name
	}
	return out, true, nil
}

// extractSpIDs collects matchInfo[*].player[*].spId from a raw payload.
func extractSpIDs(rawData string) ([]int64, error) {
	if strings.TrimSpace(rawData) == "" {
		return nil, nil
	}

	var payload match.Payload
	if err := sonic.UnmarshalString(rawData, &payload); err != nil {
		return nil, fmt.Errorf("decode match payload: %w", err)
	}

	out := make([]int64, 0, 36)
	for _, info := range payload.MatchInfo {
		for _, p := range info.Player {
			if p.SpID <= 0 {
				continue
			}
			out = append(out, p.SpID)
		}
	}
	return out, nil
}
