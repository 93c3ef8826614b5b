// Package wishlist persists each user's saved products, keyed by the
// compound product id so the same numeric id from two catalogs never
// collides.
package wishlist

import (
	"context"
	"errors"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

var (
	ErrDuplicate = errors.New("product already in wishlist")
	ErrNotFound  = errors.New("product not in wishlist")
)

// Store is the persistence contract; Redis in production, memory in tests
// and redis-less runs.
type Store interface {
	Add(ctx context.Context, userID string, p catalog.Product) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]catalog.Product, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Add(ctx context.Context, userID string, p catalog.Product) error {
	if p.ID == "" {
		return ErrNotFound
	}
	return s.store.Add(ctx, userID, p)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	return s.store.Remove(ctx, userID, productID)
}

func (s *Service) List(ctx context.Context, userID string) ([]catalog.Product, error) {
	return s.store.List(ctx, userID)
}

// Toggle mirrors the storefront's heart button: add when absent, remove
// when present. Returns the action taken ("added" or "removed").
func (s *Service) Toggle(ctx context.Context, userID string, p catalog.Product) (string, error) {
	err := s.store.Add(ctx, userID, p)
	if errors.Is(err, ErrDuplicate) {
		if err := s.store.Remove(ctx, userID, p.ID); err != nil {
			return "", err
		}
		return "removed", nil
	}
	if err != nil {
		return "", err
	}
	return "added", nil
}
