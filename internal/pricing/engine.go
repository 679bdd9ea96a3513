// Package pricing resolves an authoritative price for a product through a
// layered fallback chain: in-memory cache, live marketplace lookup, then a
// deterministic heuristic estimate. Resolution always terminates with a
// usable quote.
package pricing

import (
	"context"
	"log/slog"

	"github.com/oneiro-labs/shelfmark/internal/common"
	"github.com/oneiro-labs/shelfmark/internal/model"
	"github.com/oneiro-labs/shelfmark/internal/service"
)

// Engine is the price resolution engine.
type Engine struct {
	cache     *QuoteCache
	estimator *Estimator
	sources   []Source
	retry     service.RetryOptions
}

// NewEngine wires the fallback chain together. Sources are consulted in
// slice order.
func NewEngine(cache *QuoteCache, sources []Source, estimator *Estimator) *Engine {
	return &Engine{
		cache:     cache,
		sources:   sources,
		estimator: estimator,
		// Single attempt per source per record; SetRetry can raise it.
		retry: service.RetryOptions{MaxAttempts: 1},
	}
}

// SetRetry overrides the per-source retry policy.
func (e *Engine) SetRetry(opts service.RetryOptions) {
	e.retry = opts
}

// Resolve returns a price quote for the product. It never fails: a cache
// hit is returned as-is, live sources are tried in order, and the heuristic
// estimator terminates the chain. The result is cached before returning,
// whichever step produced it, so an identical later lookup neither
// re-scrapes nor re-estimates.
func (e *Engine) Resolve(ctx context.Context, product model.Product) model.PriceQuote {
	key := Key(product.Brand, product.Name)

	if quote, ok := e.cache.Get(key); ok {
		quote.Source = model.QuoteSourceCache
		return quote
	}

	if amount, ok := e.lookupSources(ctx, product.Name); ok {
		quote := model.NewQuote(amount, model.QuoteSourceScraped)
		e.cache.Put(key, quote)
		return quote
	}

	amount := e.estimator.Estimate(product.Category, product.Brand, product.Description)
	quote := model.NewQuote(amount, model.QuoteSourceEstimated)
	e.cache.Put(key, quote)
	return quote
}

// lookupSources walks the source list and returns the median of the first
// source that yields at least one positive price. Failures are logged and
// treated as "no result from this source".
func (e *Engine) lookupSources(ctx context.Context, query string) (float64, bool) {
	if query == "" {
		return 0, false
	}

	for _, source := range e.sources {
		var prices []float64
		err := common.WithRetry(ctx, func() error {
			var fetchErr error
			prices, fetchErr = source.Fetch(ctx, query)
			if fetchErr != nil {
				// Transport failures are worth a retry when the
				// policy allows one; parse failures are not.
				return &common.RetryableError{Err: fetchErr, Retryable: common.IsRetryable(fetchErr)}
			}
			return nil
		}, e.retry)
		if err != nil {
			slog.Warn("price source lookup failed",
				"source", source.Name(),
				"query", query,
				"error", err)
			continue
		}

		positive := prices[:0:0]
		for _, price := range prices {
			if price > 0 {
				positive = append(positive, price)
			}
		}
		if len(positive) == 0 {
			slog.Debug("price source returned no usable prices",
				"source", source.Name(),
				"query", query)
			continue
		}

		return median(positive), true
	}

	return 0, false
}
