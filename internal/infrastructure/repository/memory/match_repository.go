package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/fconline-tracker/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items []match.Match
}

func NewMatchRepository(items []match.Match) *MatchRepository {
	copied := append([]match.Match(nil), items...)
	sort.SliceStable(copied, func(i, j int) bool { return copied[i].ID < copied[j].ID })
	return &MatchRepository{items: copied}
}

func (r *MatchRepository) ListWithRawData(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nickname := strings.TrimSpace(filter.Nickname)
	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		if strings.TrimSpace(m.RawData) == "" {
			continue
		}
		if nickname != "" && m.OwnerNickname != nickname {
			continue
		}
		if filter.MatchType > 0 && m.MatchType != filter.MatchType {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}
