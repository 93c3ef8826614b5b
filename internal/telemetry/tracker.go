// Package telemetry records search-history and product-view events against
// the remote activity endpoint. Every call is fire-and-forget: failures are
// logged and swallowed, never surfaced to the surrounding flow.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/auth"
	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

type Tracker struct {
	baseURL string
	tokens  auth.TokenProvider
	http    *http.Client
	logger  *zap.Logger
}

func NewTracker(baseURL string, tokens auth.TokenProvider, timeout time.Duration, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Tracker{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type searchEvent struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
}

type productViewEvent struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Store     string  `json:"store"`
	URL       string  `json:"url"`
}

// TrackSearch records a submitted query. Errors are logged, never returned.
func (t *Tracker) TrackSearch(ctx context.Context, query, category string) {
	t.post(ctx, "/api/auth/search-history", searchEvent{Query: query, Category: category})
}

// TrackProductView records an outbound product click.
func (t *Tracker) TrackProductView(ctx context.Context, p catalog.Product) {
	t.post(ctx, "/api/auth/product-view", productViewEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		Image:     p.Image,
		Store:     p.Store,
		URL:       p.URL,
	})
}

func (t *Tracker) post(ctx context.Context, path string, payload interface{}) {
	if t.baseURL == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		t.logger.Debug("telemetry marshal failed", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		t.logger.Debug("telemetry request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	if t.tokens != nil {
		token, err := t.tokens.Token(ctx)
		if err != nil {
			t.logger.Debug("telemetry token unavailable", zap.Error(err))
			return
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		t.logger.Debug("telemetry post failed", zap.String("path", path), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Debug("telemetry post rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
	}
}
