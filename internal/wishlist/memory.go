package wishlist

import (
	"context"
	"sync"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

// MemoryStore is the redis-less Store used in tests and local runs.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string]map[string]catalog.Product
	order map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lists: make(map[string]map[string]catalog.Product),
		order: make(map[string][]string),
	}
}

func (m *MemoryStore) Add(ctx context.Context, userID string, p catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, ok := m.lists[userID]
	if !ok {
		list = make(map[string]catalog.Product)
		m.lists[userID] = list
	}
	if _, exists := list[p.ID]; exists {
		return ErrDuplicate
	}
	list[p.ID] = p
	m.order[userID] = append(m.order[userID], p.ID)
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, ok := m.lists[userID]
	if !ok {
		return ErrNotFound
	}
	if _, exists := list[productID]; !exists {
		return ErrNotFound
	}
	delete(list, productID)

	ids := m.order[userID]
	for i, id := range ids {
		if id == productID {
			m.order[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) List(ctx context.Context, userID string) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]catalog.Product, 0, len(m.lists[userID]))
	for _, id := range m.order[userID] {
		products = append(products, m.lists[userID][id])
	}
	return products, nil
}
