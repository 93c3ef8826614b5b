// Package sources holds one client per backing catalog. Every client speaks
// the same contract: a GET with a free-text q parameter, a JSON body that is
// either a bare array of raw items or an object wrapping them under
// "products", and a normalization step that turns each raw item into a
// fully-populated catalog.Product stamped with the store's label. The raw
// union-shaped records never escape this package.
package sources

import (
	"context"
	"errors"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

var (
	ErrRequestFailed = errors.New("catalog request failed")
	ErrBadStatus     = errors.New("catalog returned non-2xx status")
	ErrMalformedBody = errors.New("catalog returned malformed body")
)

// Source is one independently-owned backing catalog.
type Source interface {
	Label() string
	Search(ctx context.Context, query string) ([]catalog.Product, error)
}
