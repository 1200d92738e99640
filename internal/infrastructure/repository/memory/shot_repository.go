package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/riskibarqy/fconline-tracker/internal/domain/shot"
)

type ShotRepository struct {
	mu     sync.RWMutex
	items  map[string][]shot.Detail
	writes int
}

func NewShotRepository() *ShotRepository {
	return &ShotRepository{items: make(map[string][]shot.Detail)}
}

func (r *ShotRepository) ReplaceForMatch(_ context.Context, matchID int64, ouid string, items []shot.Detail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[shotKey(matchID, ouid)] = append([]shot.Detail(nil), items...)
	r.writes++
	return nil
}

func (r *ShotRepository) ListForMatch(matchID int64, ouid string) []shot.Detail {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]shot.Detail(nil), r.items[shotKey(matchID, ouid)]...)
}

func (r *ShotRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

func shotKey(matchID int64, ouid string) string {
	return strconv.FormatInt(matchID, 10) + "::" + ouid
}
