// Package activity records per-user search and product-view history for
// the dashboard's recent-activity views. Writes come from the telemetry
// endpoints and are capped to a recent window per user.
package activity

import (
	"context"
	"time"
)

// MaxRecords caps how many recent entries are kept per user and kind.
const MaxRecords = 100

type SearchRecord struct {
	Query    string    `json:"query"`
	Category string    `json:"category,omitempty"`
	At       time.Time `json:"at"`
}

type ViewRecord struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Store     string    `json:"store"`
	URL       string    `json:"url"`
	At        time.Time `json:"at"`
}

// Store persists recent activity, newest first.
type Store interface {
	AddSearch(ctx context.Context, userID string, rec SearchRecord) error
	RecentSearches(ctx context.Context, userID string, limit int) ([]SearchRecord, error)
	AddView(ctx context.Context, userID string, rec ViewRecord) error
	RecentViews(ctx context.Context, userID string, limit int) ([]ViewRecord, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) RecordSearch(ctx context.Context, userID, query, category string) error {
	if query == "" {
		return nil
	}
	return s.store.AddSearch(ctx, userID, SearchRecord{
		Query:    query,
		Category: category,
		At:       s.now().UTC(),
	})
}

func (s *Service) RecordView(ctx context.Context, userID string, rec ViewRecord) error {
	if rec.ProductID == "" {
		return nil
	}
	rec.At = s.now().UTC()
	return s.store.AddView(ctx, userID, rec)
}

func (s *Service) RecentSearches(ctx context.Context, userID string, limit int) ([]SearchRecord, error) {
	if limit <= 0 || limit > MaxRecords {
		limit = MaxRecords
	}
	return s.store.RecentSearches(ctx, userID, limit)
}

func (s *Service) RecentViews(ctx context.Context, userID string, limit int) ([]ViewRecord, error) {
	if limit <= 0 || limit > MaxRecords {
		limit = MaxRecords
	}
	return s.store.RecentViews(ctx, userID, limit)
}
