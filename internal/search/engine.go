// Package search derives the visible product list from a candidate set.
// Apply is pure and synchronous: the session controller re-runs it on every
// filter or sort change without touching the network.
package search

import (
	"sort"
	"strings"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

// Apply filters candidates through the current filter state and orders the
// survivors by the selected sort mode. The input slice is never mutated and
// all sorts are stable, so identical inputs always produce identical output.
//
// The query text is used for relevance ordering only. The backing catalogs
// already matched it server-side, so no substring gate is re-applied here —
// re-filtering would drop results the backend matched via stemming or
// synonyms.
func Apply(candidates []catalog.Product, state catalog.FilterState, query string) []catalog.Product {
	filtered := make([]catalog.Product, 0, len(candidates))
	for _, p := range candidates {
		if !matches(p, state) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, state.SortBy, query)
	return filtered
}

func matches(p catalog.Product, state catalog.FilterState) bool {
	if state.Category != catalog.AllCategories && p.Category != state.Category {
		return false
	}
	if state.Store != catalog.AllStores && p.Store != state.Store {
		return false
	}
	if p.Price < state.PriceMin || p.Price > state.PriceMax {
		return false
	}
	if p.Rating < state.MinRating {
		return false
	}
	return true
}

func sortProducts(products []catalog.Product, mode catalog.SortMode, query string) {
	switch mode {
	case catalog.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case catalog.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case catalog.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case catalog.SortPopularity:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ReviewCount > products[j].ReviewCount
		})
	default:
		sortByRelevance(products, query)
	}
}

// sortByRelevance ranks name matches ahead of description matches ahead of
// the rest; ties keep candidate-set (source concatenation) order. An empty
// query leaves the order untouched.
func sortByRelevance(products []catalog.Product, query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return relevanceRank(products[i], q) < relevanceRank(products[j], q)
	})
}

func relevanceRank(p catalog.Product, loweredQuery string) int {
	if strings.Contains(strings.ToLower(p.Name), loweredQuery) {
		return 0
	}
	if strings.Contains(strings.ToLower(p.Description), loweredQuery) {
		return 1
	}
	return 2
}
