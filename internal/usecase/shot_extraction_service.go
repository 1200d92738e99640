package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fconline-tracker/internal/domain/match"
	"github.com/riskibarqy/fconline-tracker/internal/domain/shot"
)

// ShotExtractionService decodes shootDetail entries of a match payload and
// replaces the owner's stored shot rows.
type ShotExtractionService struct {
	shots shot.Repository
}

func NewShotExtractionService(shots shot.Repository) *ShotExtractionService {
	return &ShotExtractionService{shots: shots}
}

func (s *ShotExtractionService) Extract(ctx context.Context, m match.Match, ownerOUID string) (int, error) {
	if strings.TrimSpace(m.RawData) == "" {
		return 0, fmt.Errorf("%w: match=%d has no raw data", ErrInvalidArgument, m.ID)
	}

	var payload match.Payload
	if err := sonic.UnmarshalString(m.RawData, &payload); err != nil {
		return 0, fmt.Errorf("decode match payload match=%d: %w", m.ID, err)
	}

	info, ok := findMatchInfo(payload.MatchInfo, ownerOUID)
	if !ok {
		return 0, fmt.Errorf("%w: owner=%s not in match=%d", ErrNotFound, ownerOUID, m.ID)
	}

	items := make([]shot.Detail, 0, len(info.ShootDetail))
	for _, raw := range info.ShootDetail {
		period, minute, second := shot.DecodeGoalTime(raw.GoalTime)
		items = append(items, shot.Detail{
			MatchID:    m.ID,
			OUID:       info.OUID,
			SpID:       raw.SpID,
			GoalTime:   raw.GoalTime,
			Period:     period,
			Minute:     minute,
			Second:     second,
			X:          raw.X,
			Y:          raw.Y,
			Type:       raw.Type,
			Result:     raw.Result,
			AssistSpID: raw.AssistSpID,
			HitPost:    raw.HitPost,
			InPenalty:  raw.InPenalty,
		})
	}

	if err := s.shots.ReplaceForMatch(ctx, m.ID, info.OUID, items); err != nil {
		return 0, fmt.Errorf("replace shots match=%d: %w", m.ID, err)
	}
	return len(items), nil
}

func findMatchInfo(items []match.InfoItem, ouid string) (match.InfoItem, bool) {
	for _, item := range items {
		if item.OUID == ouid {
			return item, true
		}
	}
	return match.InfoItem{}, false
}
