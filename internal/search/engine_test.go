package search

import (
	"reflect"
	"testing"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

func wideOpen() catalog.FilterState {
	return catalog.DefaultFilterState(2000)
}

func namesOf(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestApply_Predicates(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "Phone", Category: "Electronics", Store: "Martello", Price: 999, Rating: 4.8},
		{Name: "Shirt", Category: "Fashion", Store: "Prodexa", Price: 25, Rating: 4.0},
		{Name: "Lamp", Category: "Home", Store: "Storenta", Price: 60, Rating: 3.2},
		{Name: "Tablet", Category: "Electronics", Store: "Prodexa", Price: 450, Rating: 4.4},
	}

	tests := []struct {
		name   string
		mutate func(*catalog.FilterState)
		want   []string
	}{
		{
			name:   "wide open keeps everything",
			mutate: func(s *catalog.FilterState) {},
			want:   []string{"Phone", "Shirt", "Lamp", "Tablet"},
		},
		{
			name:   "category is exact and case-sensitive",
			mutate: func(s *catalog.FilterState) { s.Category = "Electronics" },
			want:   []string{"Phone", "Tablet"},
		},
		{
			name:   "lowercased category matches nothing",
			mutate: func(s *catalog.FilterState) { s.Category = "electronics" },
			want:   []string{},
		},
		{
			name:   "store filter",
			mutate: func(s *catalog.FilterState) { s.Store = "Prodexa" },
			want:   []string{"Shirt", "Tablet"},
		},
		{
			name: "price range is inclusive on both bounds",
			mutate: func(s *catalog.FilterState) {
				s.PriceMin = 25
				s.PriceMax = 450
			},
			want: []string{"Shirt", "Lamp", "Tablet"},
		},
		{
			name:   "min rating",
			mutate: func(s *catalog.FilterState) { s.MinRating = 4.4 },
			want:   []string{"Phone", "Tablet"},
		},
		{
			name: "predicates combine with AND",
			mutate: func(s *catalog.FilterState) {
				s.Category = "Electronics"
				s.Store = "Prodexa"
			},
			want: []string{"Tablet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := wideOpen()
			tt.mutate(&state)

			got := namesOf(Apply(candidates, state, ""))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "A", Category: "Electronics", Store: "Martello", Price: 50, Rating: 3, ReviewCount: 10},
		{Name: "B", Category: "Electronics", Store: "Prodexa", Price: 20, Rating: 5, ReviewCount: 99},
		{Name: "C", Category: "Fashion", Store: "Prodexa", Price: 20, Rating: 4, ReviewCount: 5},
	}
	state := wideOpen()
	state.SortBy = catalog.SortPriceLow

	once := Apply(candidates, state, "q")
	twice := Apply(once, state, "q")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Apply is not idempotent: %v then %v", namesOf(once), namesOf(twice))
	}
}

// Narrowing any single bound never grows the result.
func TestApply_Monotonic(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "A", Category: "Electronics", Store: "Martello", Price: 50, Rating: 3},
		{Name: "B", Category: "Fashion", Store: "Prodexa", Price: 500, Rating: 4.5},
		{Name: "C", Category: "Home", Store: "Storenta", Price: 1200, Rating: 2},
		{Name: "D", Category: "Electronics", Store: "Prodexa", Price: 80, Rating: 5},
	}

	wide := wideOpen()
	base := len(Apply(candidates, wide, ""))

	narrowings := map[string]func(*catalog.FilterState){
		"raise min rating": func(s *catalog.FilterState) { s.MinRating = 4 },
		"lower price max":  func(s *catalog.FilterState) { s.PriceMax = 100 },
		"raise price min":  func(s *catalog.FilterState) { s.PriceMin = 60 },
		"pin the category": func(s *catalog.FilterState) { s.Category = "Electronics" },
		"pin the store":    func(s *catalog.FilterState) { s.Store = "Storenta" },
	}

	for name, narrow := range narrowings {
		t.Run(name, func(t *testing.T) {
			state := wideOpen()
			narrow(&state)
			if got := len(Apply(candidates, state, "")); got > base {
				t.Errorf("narrowed result has %d items, wider had %d", got, base)
			}
		})
	}
}

func TestApply_StableSortByPrice(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "first", Price: 50, Rating: 3},
		{Name: "second", Price: 20, Rating: 5},
		{Name: "third", Price: 20, Rating: 4},
	}
	state := wideOpen()
	state.SortBy = catalog.SortPriceLow

	got := namesOf(Apply(candidates, state, ""))
	want := []string{"second", "third", "first"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("price-low order = %v, want %v (stable between equal prices)", got, want)
	}
}

func TestApply_SortModes(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "cheap", Price: 10, Rating: 2.0, ReviewCount: 5},
		{Name: "mid", Price: 100, Rating: 4.5, ReviewCount: 500},
		{Name: "premium", Price: 900, Rating: 4.9, ReviewCount: 50},
	}

	tests := []struct {
		mode catalog.SortMode
		want []string
	}{
		{catalog.SortPriceLow, []string{"cheap", "mid", "premium"}},
		{catalog.SortPriceHigh, []string{"premium", "mid", "cheap"}},
		{catalog.SortRating, []string{"premium", "mid", "cheap"}},
		{catalog.SortPopularity, []string{"mid", "premium", "cheap"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			state := wideOpen()
			state.SortBy = tt.mode
			got := namesOf(Apply(candidates, state, ""))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_RelevanceOrdering(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "Charger Cable"},
		{Name: "iPhone 15 Pro"},
		{Name: "Phone case for iPhone"},
	}
	state := wideOpen()

	got := namesOf(Apply(candidates, state, "iPhone"))
	want := []string{"iPhone 15 Pro", "Phone case for iPhone", "Charger Cable"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("relevance order = %v, want %v", got, want)
	}
}

func TestApply_RelevanceDescriptionBreaksTies(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "Silicone Cover", Description: "Protective sleeve"},
		{Name: "Magsafe Wallet", Description: "Attaches to any iPhone"},
	}
	state := wideOpen()

	got := namesOf(Apply(candidates, state, "iphone"))
	want := []string{"Magsafe Wallet", "Silicone Cover"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("relevance order = %v, want %v", got, want)
	}
}

func TestApply_RelevanceEmptyQueryKeepsOrder(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "Zebra"}, {Name: "Apple"}, {Name: "Mango"},
	}
	state := wideOpen()

	got := namesOf(Apply(candidates, state, "   "))
	want := []string{"Zebra", "Apple", "Mango"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want unchanged %v", got, want)
	}
}

// Non-matching products are ranked last, never dropped: the engine trusts
// server-side matching.
func TestApply_QueryNeverFiltersOut(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "Completely Unrelated Thing"},
		{Name: "iPhone 15"},
	}
	state := wideOpen()

	got := Apply(candidates, state, "iphone")
	if len(got) != 2 {
		t.Fatalf("Apply dropped %d products on query text", 2-len(got))
	}
	if got[0].Name != "iPhone 15" {
		t.Errorf("first = %q, want the name match ranked first", got[0].Name)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	candidates := []catalog.Product{
		{Name: "B", Price: 2}, {Name: "A", Price: 1},
	}
	state := wideOpen()
	state.SortBy = catalog.SortPriceLow

	Apply(candidates, state, "")
	if candidates[0].Name != "B" {
		t.Error("Apply reordered the caller's slice")
	}
}
