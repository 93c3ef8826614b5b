package catalog

// Sentinel values disabling the category and store predicates.
const (
	AllCategories = "All Categories"
	AllStores     = "All Stores"
)

// DefaultPriceMax is the upper bound of the price range slider when no
// maximum is configured.
const DefaultPriceMax = 2000

// SortMode selects the comparator applied after filtering.
type SortMode string

const (
	SortRelevance  SortMode = "relevance"
	SortPriceLow   SortMode = "price-low"
	SortPriceHigh  SortMode = "price-high"
	SortRating     SortMode = "rating"
	SortPopularity SortMode = "popularity"
)

// ParseSortMode maps a wire value onto a SortMode, falling back to
// relevance for unknown values.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceLow, SortPriceHigh, SortRating, SortPopularity:
		return SortMode(s)
	default:
		return SortRelevance
	}
}

// FilterState holds the user-adjustable filter and sort settings of one
// search session.
type FilterState struct {
	Category  string   `json:"category"`
	Store     string   `json:"store"`
	PriceMin  float64  `json:"priceMin"`
	PriceMax  float64  `json:"priceMax"`
	MinRating float64  `json:"minRating"`
	SortBy    SortMode `json:"sortBy"`
}

// DefaultFilterState returns the wide-open filter settings: all categories
// and stores, full price range up to priceMax, any rating, relevance order.
func DefaultFilterState(priceMax float64) FilterState {
	if priceMax <= 0 {
		priceMax = DefaultPriceMax
	}
	return FilterState{
		Category:  AllCategories,
		Store:     AllStores,
		PriceMin:  0,
		PriceMax:  priceMax,
		MinRating: 0,
		SortBy:    SortRelevance,
	}
}
