package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/fconline-tracker/internal/domain/performance"
)

type PerformanceRepository struct {
	mu     sync.RWMutex
	items  map[int64]performance.PlayerPerformance
	writes int
}

func NewPerformanceRepository(items []performance.PlayerPerformance) *PerformanceRepository {
	index := make(map[int64]performance.PlayerPerformance, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return &PerformanceRepository{items: index}
}

func (r *PerformanceRepository) ListByNamePrefix(_ context.Context, prefix string, limit int) ([]performance.PlayerPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.PlayerPerformance, 0)
	for _, item := range r.items {
		if strings.HasPrefix(item.PlayerName, prefix) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *PerformanceRepository) UpdateName(_ context.Context, id int64, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("player performance id=%d not found", id)
	}
	item.PlayerName = name
	r.items[id] = item
	r.writes++
	return nil
}

func (r *PerformanceRepository) Get(id int64) (performance.PlayerPerformance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok
}

// Writes counts UpdateName calls that changed a row.
func (r *PerformanceRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}
