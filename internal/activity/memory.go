package activity

import (
	"context"
	"sync"
)

// MemoryStore is the redis-less Store used in tests and local runs.
type MemoryStore struct {
	mu       sync.RWMutex
	searches map[string][]SearchRecord
	views    map[string][]ViewRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		searches: make(map[string][]SearchRecord),
		views:    make(map[string][]ViewRecord),
	}
}

func (m *MemoryStore) AddSearch(ctx context.Context, userID string, rec SearchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[userID] = prependCapped(m.searches[userID], rec)
	return nil
}

func (m *MemoryStore) AddView(ctx context.Context, userID string, rec ViewRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[userID] = prependCapped(m.views[userID], rec)
	return nil
}

func (m *MemoryStore) RecentSearches(ctx context.Context, userID string, limit int) ([]SearchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return head(m.searches[userID], limit), nil
}

func (m *MemoryStore) RecentViews(ctx context.Context, userID string, limit int) ([]ViewRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return head(m.views[userID], limit), nil
}

func prependCapped[T any](records []T, rec T) []T {
	records = append([]T{rec}, records...)
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return records
}

func head[T any](records []T, limit int) []T {
	if limit > len(records) {
		limit = len(records)
	}
	out := make([]T, limit)
	copy(out, records[:limit])
	return out
}
