// Package aggregator fans a query out to every configured catalog source
// concurrently and merges whatever came back. A source that fails only
// costs its own contribution; the merge order always follows source
// declaration order, never network completion order.
package aggregator

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
	"github.com/usmancout/ShopSense-AI/internal/sources"
)

// ErrAllSourcesFailed is returned when not a single catalog produced a
// usable response. Partial failure is not an error.
var ErrAllSourcesFailed = errors.New("all catalog sources failed")

type Aggregator struct {
	sources []sources.Source
	timeout time.Duration
	logger  *zap.Logger
}

func New(srcs []sources.Source, timeout time.Duration, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{sources: srcs, timeout: timeout, logger: logger}
}

// Result carries the merged products plus per-source accounting for the
// degraded-state reporting in the HTTP layer.
type Result struct {
	Products  []catalog.Product
	Succeeded int
	Failed    int
}

// Search queries every source once, concurrently, and concatenates the
// successful contributions in source declaration order. Results are
// collected into per-source slots before concatenation so the output order
// is identical no matter which response arrives first. Failing sources are
// logged and omitted; only a total failure yields ErrAllSourcesFailed,
// still with an empty non-nil product list.
func (a *Aggregator) Search(ctx context.Context, query string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	slots := make([][]catalog.Product, len(a.sources))
	errs := make([]error, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					a.logger.Error("source panic recovered",
						zap.String("source", src.Label()),
						zap.Any("panic", r),
					)
					errs[i] = sources.ErrRequestFailed
				}
			}()

			products, err := src.Search(ctx, query)
			if err != nil {
				errs[i] = err
				return
			}
			slots[i] = products
		}(i, src)
	}
	wg.Wait()

	result := Result{Products: make([]catalog.Product, 0)}
	for i := range a.sources {
		if errs[i] != nil {
			result.Failed++
			a.logger.Warn("source search failed",
				zap.String("source", a.sources[i].Label()),
				zap.String("query", query),
				zap.Error(errs[i]),
			)
			continue
		}
		result.Succeeded++
		result.Products = append(result.Products, slots[i]...)
	}

	if result.Succeeded == 0 && len(a.sources) > 0 {
		return result, ErrAllSourcesFailed
	}

	a.logger.Info("aggregation completed",
		zap.String("query", query),
		zap.Int("products", len(result.Products)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}
