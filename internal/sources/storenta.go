package sources

import (
	"time"

	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
	"github.com/usmancout/ShopSense-AI/pkg/coerce"
)

// NewStorenta builds the client for the Storenta catalog. Storenta mixes
// both naming conventions between records and ships numerics as strings
// ("$1,199", "4.5 stars"), which the coercion helpers absorb.
func NewStorenta(host string, timeout time.Duration, logger *zap.Logger) Source {
	return newClient("Storenta", host, normalizeStorenta, timeout, logger)
}

func normalizeStorenta(raw rawItem, label string) catalog.Product {
	return catalog.Product{
		ID:            compoundID(label, pick(raw, "id", "sku")),
		Name:          coerce.String(pick(raw, "name", "title"), ""),
		Brand:         coerce.String(pick(raw, "brand", "manufacturer"), catalog.DefaultBrand),
		Category:      coerce.String(pick(raw, "category"), catalog.DefaultCategory),
		Store:         label,
		Price:         nonNegative(coerce.Float(pick(raw, "price"))),
		OriginalPrice: nonNegative(coerce.Float(pick(raw, "originalPrice"))),
		Rating:        clampRating(coerce.Float(pick(raw, "rating", "stars"))),
		ReviewCount:   int(nonNegative(coerce.Float(pick(raw, "reviewCount", "ratingCount")))),
		Description:   coerce.String(pick(raw, "description", "summary"), ""),
		Image:         coerce.String(pick(raw, "image", "imageUrl"), catalog.DefaultImage),
		URL:           coerce.String(pick(raw, "url", "link"), catalog.DefaultURL),
		Tags:          coerce.Strings(pick(raw, "tags")),
		InStock:       coerce.Bool(pick(raw, "inStock"), true),
	}
}
