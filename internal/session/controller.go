// Package session owns the state of one product-search session: query
// text, filter state, the candidate set and the visible list derived from
// it. One controller instance is the sole mutator of that state; the
// presentation layer reads consistent snapshots.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/aggregator"
	"github.com/usmancout/ShopSense-AI/internal/catalog"
	"github.com/usmancout/ShopSense-AI/internal/search"
)

// State of the session: Idle before any query, Loading while an
// aggregation is in flight, Ready once a candidate set is held. Filter and
// sort changes in Ready never re-enter Loading.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Searcher is the aggregation dependency; satisfied by *aggregator.Aggregator.
type Searcher interface {
	Search(ctx context.Context, query string) (aggregator.Result, error)
}

// Tracker receives fire-and-forget search telemetry; satisfied by
// *telemetry.Tracker. May be nil.
type Tracker interface {
	TrackSearch(ctx context.Context, query, category string)
}

// Snapshot is a consistent read of the session for rendering.
type Snapshot struct {
	State     State
	Query     string
	Filters   catalog.FilterState
	Visible   []catalog.Product
	AllFailed bool
}

type Controller struct {
	searcher Searcher
	tracker  Tracker
	logger   *zap.Logger
	priceMax float64

	mu         sync.Mutex
	state      State
	query      string
	filters    catalog.FilterState
	candidates []catalog.Product
	visible    []catalog.Product
	allFailed  bool
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func NewController(searcher Searcher, tracker Tracker, priceMax float64, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		searcher: searcher,
		tracker:  tracker,
		logger:   logger,
		priceMax: priceMax,
		state:    StateIdle,
		filters:  catalog.DefaultFilterState(priceMax),
		visible:  make([]catalog.Product, 0),
	}
}

// Submit triggers a fresh aggregation for the trimmed query. An empty query
// clears the candidate set and returns to Idle without any network call. A
// submit while another aggregation is in flight supersedes it: the stale
// aggregation's results are discarded when they eventually settle, so the
// latest query always wins. The returned channel closes when this
// submission has settled (or been discarded), which callers may ignore.
func (c *Controller) Submit(ctx context.Context, query string) <-chan struct{} {
	done := make(chan struct{})
	query = strings.TrimSpace(query)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(done)
		return done
	}

	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.query = query

	if query == "" {
		c.state = StateIdle
		c.candidates = nil
		c.visible = make([]catalog.Product, 0)
		c.allFailed = false
		c.mu.Unlock()
		close(done)
		return done
	}

	searchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateLoading
	c.allFailed = false
	c.mu.Unlock()

	if c.tracker != nil {
		category := ""
		c.mu.Lock()
		if c.filters.Category != catalog.AllCategories {
			category = c.filters.Category
		}
		c.mu.Unlock()
		go c.tracker.TrackSearch(context.WithoutCancel(ctx), query, category)
	}

	go func() {
		defer close(done)

		result, err := c.searcher.Search(searchCtx, query)
		allFailed := errors.Is(err, aggregator.ErrAllSourcesFailed)
		if err != nil && !allFailed {
			// Cancellation of a superseded search lands here; the
			// generation check below discards it either way.
			c.logger.Debug("aggregation ended with error", zap.Error(err))
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || gen != c.generation {
			// A newer query was issued (or the session was torn down)
			// while this one was in flight; drop it on the floor.
			return
		}

		c.candidates = result.Products
		c.allFailed = allFailed
		c.state = StateReady
		c.visible = search.Apply(c.candidates, c.filters, c.query)
		c.cancel = nil
	}()

	return done
}

// Retry re-issues the last submitted query, for the presentation layer's
// retry action after a total source failure.
func (c *Controller) Retry(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()
	return c.Submit(ctx, query)
}

func (c *Controller) SetCategory(category string) {
	c.updateFilters(func(f *catalog.FilterState) { f.Category = category })
}

func (c *Controller) SetStore(store string) {
	c.updateFilters(func(f *catalog.FilterState) { f.Store = store })
}

// SetPriceRange clamps the bounds to [0, configured max] and swaps them if
// inverted before re-deriving the visible list.
func (c *Controller) SetPriceRange(min, max float64) {
	if min < 0 {
		min = 0
	}
	if max > c.priceMax || max <= 0 {
		max = c.priceMax
	}
	if min > max {
		min, max = max, min
	}
	c.updateFilters(func(f *catalog.FilterState) {
		f.PriceMin = min
		f.PriceMax = max
	})
}

func (c *Controller) SetMinRating(rating float64) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	c.updateFilters(func(f *catalog.FilterState) { f.MinRating = rating })
}

func (c *Controller) SetSortBy(mode catalog.SortMode) {
	c.updateFilters(func(f *catalog.FilterState) { f.SortBy = mode })
}

// ClearFilters resets every filter to its default without re-querying the
// network; the sort mode is part of the reset too.
func (c *Controller) ClearFilters() {
	c.updateFilters(func(f *catalog.FilterState) {
		*f = catalog.DefaultFilterState(c.priceMax)
	})
}

// updateFilters applies a filter mutation and synchronously re-derives the
// visible list from the held candidate set. No state transition, no network.
func (c *Controller) updateFilters(mutate func(*catalog.FilterState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	mutate(&c.filters)
	c.visible = search.Apply(c.candidates, c.filters, c.query)
}

// Snapshot returns a consistent view of the session. The visible slice is
// copied so renderers can hold it across later mutations.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]catalog.Product, len(c.visible))
	copy(visible, c.visible)

	return Snapshot{
		State:     c.state,
		Query:     c.query,
		Filters:   c.filters,
		Visible:   visible,
		AllFailed: c.allFailed,
	}
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateLoading
}

// Close tears the session down: any in-flight aggregation is cancelled and
// late-arriving results are discarded without touching state.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = StateIdle
}
