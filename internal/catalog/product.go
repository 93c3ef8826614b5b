package catalog

// Default values substituted by source adapters for absent or malformed
// fields. Every Product in a candidate set has passed through an adapter,
// so none of its fields is ever empty in the zero-vs-missing sense these
// defaults cover.
const (
	DefaultBrand    = "Unknown"
	DefaultCategory = "Other"
	DefaultImage    = "https://via.placeholder.com/150"
	DefaultURL      = "#"
)

// Product is the canonical, fully-populated product shape shared by every
// part of the system. IDs are compound (store slug + raw catalog id) so two
// catalogs reusing the same numeric id never collide downstream.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Store         string   `json:"store"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	URL           string   `json:"url"`
	Tags          []string `json:"tags"`
	InStock       bool     `json:"inStock"`
}

// Discounted reports whether the product carries an original price above
// the current one.
func (p Product) Discounted() bool {
	return p.OriginalPrice > 0 && p.Price < p.OriginalPrice
}

// DiscountPercent returns the rounded discount percentage, or 0 when the
// product is not discounted.
func (p Product) DiscountPercent() int {
	if !p.Discounted() {
		return 0
	}
	return int((1-p.Price/p.OriginalPrice)*100 + 0.5)
}
