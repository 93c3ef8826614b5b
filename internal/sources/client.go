package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
	"github.com/usmancout/ShopSense-AI/pkg/coerce"
)

// rawItem is one loosely-typed record as a catalog sent it. Adapters resolve
// it into a strict catalog.Product immediately; nothing else sees this shape.
type rawItem map[string]interface{}

// normalizeFunc is a per-catalog adapter: pure, total, never errors on a
// malformed record.
type normalizeFunc func(raw rawItem, label string) catalog.Product

// client is the shared HTTP plumbing behind every catalog source. The
// per-store files supply the label, endpoint and adapter.
type client struct {
	label     string
	host      string
	normalize normalizeFunc
	http      *http.Client
	logger    *zap.Logger
}

func newClient(label, host string, normalize normalizeFunc, timeout time.Duration, logger *zap.Logger) *client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &client{
		label:     label,
		host:      host,
		normalize: normalize,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (c *client) Label() string { return c.label }

func (c *client) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	searchURL := fmt.Sprintf("%s?q=%s", c.host, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrBadStatus, c.label, resp.StatusCode)
	}

	items, err := decodeItems(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	products := make([]catalog.Product, 0, len(items))
	for _, raw := range items {
		products = append(products, c.normalize(raw, c.label))
	}

	c.logger.Debug("catalog search completed",
		zap.String("source", c.label),
		zap.String("query", query),
		zap.Int("count", len(products)),
	)

	return products, nil
}

// decodeItems tolerates both response shapes the catalogs use: a bare array
// of items, or an object with the array under a "products" key.
func decodeItems(body io.Reader) ([]rawItem, error) {
	var payload json.RawMessage
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, err
	}

	var items []rawItem
	if err := json.Unmarshal(payload, &items); err == nil {
		return items, nil
	}

	var wrapper struct {
		Products []rawItem `json:"products"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Products, nil
}

// compoundID builds the session-unique product identity from the store
// label and the raw catalog id, generating a fallback when the record
// carries no usable id.
func compoundID(label string, rawID interface{}) string {
	slug := strings.ToLower(strings.ReplaceAll(label, " ", "-"))
	id := coerce.ID(rawID)
	if id == "" {
		id = uuid.NewString()
	}
	return slug + "-" + id
}

// pick returns the first key present in the record, honoring each catalog's
// preferred field name with its sibling spellings as fallbacks.
func pick(raw rawItem, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
