package sources

import (
	"time"

	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
	"github.com/usmancout/ShopSense-AI/pkg/coerce"
)

// NewMartello builds the client for the Martello catalog. Martello uses the
// canonical field names but occasionally falls back to "title" for the name
// and "link" for the outbound URL, and prices arrive as currency strings.
func NewMartello(host string, timeout time.Duration, logger *zap.Logger) Source {
	return newClient("Martello", host, normalizeMartello, timeout, logger)
}

func normalizeMartello(raw rawItem, label string) catalog.Product {
	return catalog.Product{
		ID:            compoundID(label, pick(raw, "id")),
		Name:          coerce.String(pick(raw, "name", "title"), ""),
		Brand:         coerce.String(pick(raw, "brand"), catalog.DefaultBrand),
		Category:      coerce.String(pick(raw, "category"), catalog.DefaultCategory),
		Store:         label,
		Price:         nonNegative(coerce.Float(pick(raw, "price"))),
		OriginalPrice: nonNegative(coerce.Float(pick(raw, "originalPrice"))),
		Rating:        clampRating(coerce.Float(pick(raw, "rating"))),
		ReviewCount:   int(nonNegative(coerce.Float(pick(raw, "reviewCount", "reviews")))),
		Description:   coerce.String(pick(raw, "description"), ""),
		Image:         coerce.String(pick(raw, "imageUrl", "image"), catalog.DefaultImage),
		URL:           coerce.String(pick(raw, "link", "url"), catalog.DefaultURL),
		Tags:          coerce.Strings(pick(raw, "tags")),
		InStock:       coerce.Bool(pick(raw, "inStock"), true),
	}
}
