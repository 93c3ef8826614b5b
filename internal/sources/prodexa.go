package sources

import (
	"time"

	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
	"github.com/usmancout/ShopSense-AI/pkg/coerce"
)

// NewProdexa builds the client for the Prodexa catalog. Prodexa names things
// the other way around: "title" for the product name, "image" for the image
// URL, "url" for the outbound link, and review counts under "reviews".
func NewProdexa(host string, timeout time.Duration, logger *zap.Logger) Source {
	return newClient("Prodexa", host, normalizeProdexa, timeout, logger)
}

func normalizeProdexa(raw rawItem, label string) catalog.Product {
	return catalog.Product{
		ID:            compoundID(label, pick(raw, "id", "productId")),
		Name:          coerce.String(pick(raw, "title", "name"), ""),
		Brand:         coerce.String(pick(raw, "brand"), catalog.DefaultBrand),
		Category:      coerce.String(pick(raw, "category"), catalog.DefaultCategory),
		Store:         label,
		Price:         nonNegative(coerce.Float(pick(raw, "price"))),
		OriginalPrice: nonNegative(coerce.Float(pick(raw, "originalPrice", "listPrice"))),
		Rating:        clampRating(coerce.Float(pick(raw, "rating"))),
		ReviewCount:   int(nonNegative(coerce.Float(pick(raw, "reviews", "reviewCount")))),
		Description:   coerce.String(pick(raw, "description"), ""),
		Image:         coerce.String(pick(raw, "image", "imageUrl"), catalog.DefaultImage),
		URL:           coerce.String(pick(raw, "url", "link"), catalog.DefaultURL),
		Tags:          coerce.Strings(pick(raw, "tags")),
		InStock:       coerce.Bool(pick(raw, "inStock", "available"), true),
	}
}
