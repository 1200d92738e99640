package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
)

type fakeCacheEntry struct {
	value     []byte
	ttl       time.Duration
	expiresAt time.Time
}

// fakeCache is a deterministic Cache with a movable clock.
type fakeCache struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]fakeCacheEntry
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		now:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		entries: make(map[string]fakeCacheEntry),
	}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return nil, false, c.getErr
	}
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(c.now) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := fakeCacheEntry{value: append([]byte(nil), value...), ttl: ttl}
	if ttl > 0 {
		e.expiresAt = c.now.Add(ttl)
	}
	c.entries[key] = e
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeCache) entry(key string) (fakeCacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

var errSourceDown = errors.New("source down")

// fakeSource serves fixed tables and counts calls per table.
type fakeSource struct {
	mu     sync.Mutex
	tables map[metadata.TableName]metadata.Table
	err    error
	calls  map[metadata.TableName]int
}

func newFakeSource(tables map[metadata.TableName]metadata.Table) *fakeSource {
	return &fakeSource{tables: tables, calls: make(map[metadata.TableName]int)}
}

func failingSource() *fakeSource {
	s := newFakeSource(nil)
	s.err = errSourceDown
	return s
}

func (s *fakeSource) FetchTable(_ context.Context, name metadata.TableName) (metadata.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[name]++
	if s.err != nil {
		return nil, s.err
	}
	table, ok := s.tables[name]
	if !ok {
		return nil, errSourceDown
	}
	return table, nil
}

func (s *fakeSource) callCount(name metadata.TableName) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func testTables() map[metadata.TableName]metadata.Table {
	return map[metadata.TableName]metadata.Table{
		metadata.TableSpID: {
			{"id": float64(100), "name": "Pelé"},
			{"id": float64(101000001), "name": "Thierry Henry"},
		},
		metadata.TableSeasonID: {
			{"seasonId": float64(5), "className": "Season 5 (Icon)", "seasonImg": "https://img/5.png"},
			{"seasonId": float64(101), "className": "ICON", "seasonImg": "https://img/101.png"},
		},
		metadata.TableMatchType: {
			{"matchtype": float64(50), "desc": "공식경기"},
		},
		metadata.TableDivision: {
			{"divisionId": float64(800), "divisionName": "슈퍼챔피언스"},
		},
		metadata.TablePosition: {
			{"spposition": float64(0), "desc": "GK"},
		},
	}
}

func newTestStore(cache Cache, file, remote MetadataSource) *MetadataStore {
	return NewMetadataStore(MetadataStoreConfig{
		Cache:  cache,
		File:   file,
		Remote: remote,
	})
}
