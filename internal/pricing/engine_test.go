package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneiro-labs/shelfmark/internal/model"
)

// stubSource is a scripted price source for engine tests.
type stubSource struct {
	err    error
	name   string
	prices []float64
	mu     sync.Mutex
	calls  int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, _ string) ([]float64, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.prices, nil
}

func newTestEngine(sources ...Source) *Engine {
	return NewEngine(NewQuoteCache(CachePolicy{}), sources, DefaultEstimator())
}

func TestEngine_ResolveFromSource(t *testing.T) {
	source := &stubSource{name: "shop", prices: []float64{14800, 15500, 15000}}
	engine := newTestEngine(source)

	product := model.Product{Name: "RTX 4070", Brand: "MSI", Category: "GPU"}
	quote := engine.Resolve(context.Background(), product)

	assert.Equal(t, model.QuoteSourceScraped, quote.Source)
	assert.InDelta(t, 15000, quote.Amount, 0.001)
	assert.InDelta(t, 18000, quote.MarketPrice, 0.001)
	assert.Equal(t, 17, quote.DiscountPercent)
	assert.Equal(t, model.Currency, quote.Currency)
}

func TestEngine_SecondResolveHitsCache(t *testing.T) {
	source := &stubSource{name: "shop", prices: []float64{15000}}
	engine := newTestEngine(source)

	product := model.Product{Name: "RTX 4070", Brand: "MSI", Category: "GPU"}

	first := engine.Resolve(context.Background(), product)
	second := engine.Resolve(context.Background(), product)

	assert.Equal(t, 1, source.calls, "cache hit must not touch the network")
	assert.Equal(t, model.QuoteSourceCache, second.Source)
	assert.InDelta(t, first.Amount, second.Amount, 0.001)
	assert.InDelta(t, first.MarketPrice, second.MarketPrice, 0.001)
	assert.Equal(t, first.DiscountPercent, second.DiscountPercent)
}

func TestEngine_FailedSourceFallsThrough(t *testing.T) {
	broken := &stubSource{name: "down", err: errors.New("connection refused")}
	working := &stubSource{name: "up", prices: []float64{4599}}
	engine := newTestEngine(broken, working)

	product := model.Product{Name: "Vengeance 16GB", Brand: "Corsair", Category: "RAM"}
	quote := engine.Resolve(context.Background(), product)

	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, working.calls)
	assert.Equal(t, model.QuoteSourceScraped, quote.Source)
	assert.InDelta(t, 4599, quote.Amount, 0.001)
}

func TestEngine_EmptySourceFallsThrough(t *testing.T) {
	empty := &stubSource{name: "empty"}
	working := &stubSource{name: "up", prices: []float64{2500}}
	engine := newTestEngine(empty, working)

	quote := engine.Resolve(context.Background(), model.Product{Name: "Mousepad", Category: "Accessories"})

	assert.Equal(t, model.QuoteSourceScraped, quote.Source)
	assert.InDelta(t, 2500, quote.Amount, 0.001)
}

func TestEngine_NonPositivePricesDiscarded(t *testing.T) {
	junk := &stubSource{name: "junk", prices: []float64{0, -100}}
	engine := newTestEngine(junk)

	quote := engine.Resolve(context.Background(), model.Product{Name: "Something", Category: "Unrecognized"})

	assert.Equal(t, model.QuoteSourceEstimated, quote.Source)
	assert.InDelta(t, 31200, quote.Amount, 0.001)
}

func TestEngine_EstimatorTerminatesChain(t *testing.T) {
	engine := newTestEngine()

	product := model.Product{Name: "Mystery Item", Category: "Unrecognized"}
	quote := engine.Resolve(context.Background(), product)

	require.Equal(t, model.QuoteSourceEstimated, quote.Source)
	assert.InDelta(t, 31200, quote.Amount, 0.001)
	assert.Greater(t, quote.MarketPrice, quote.Amount)

	// Even an estimate is cached for subsequent lookups.
	again := engine.Resolve(context.Background(), product)
	assert.Equal(t, model.QuoteSourceCache, again.Source)
	assert.InDelta(t, quote.Amount, again.Amount, 0.001)
}

func TestEngine_FirstSourceWithResultsWins(t *testing.T) {
	first := &stubSource{name: "first", prices: []float64{10000}}
	second := &stubSource{name: "second", prices: []float64{99999}}
	engine := newTestEngine(first, second)

	quote := engine.Resolve(context.Background(), model.Product{Name: "B550 Motherboard", Category: "Motherboard"})

	assert.InDelta(t, 10000, quote.Amount, 0.001)
	assert.Equal(t, 0, second.calls, "later sources are not consulted after a hit")
}

func TestEngine_ConcurrentResolveSameKey(t *testing.T) {
	source := &stubSource{name: "shop", prices: []float64{15000}}
	engine := newTestEngine(source)

	product := model.Product{Name: "RTX 4070", Brand: "MSI", Category: "GPU"}

	const resolvers = 16
	quotes := make([]model.PriceQuote, resolvers)

	var wg sync.WaitGroup
	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			quotes[slot] = engine.Resolve(context.Background(), product)
		}(i)
	}
	wg.Wait()

	// Concurrent resolution of one key may race to the sources, but every
	// caller must see the same amount and the cache must stay consistent.
	for _, quote := range quotes {
		assert.InDelta(t, 15000, quote.Amount, 0.001)
	}
	assert.Equal(t, 1, engine.cache.Len())

	after := engine.Resolve(context.Background(), product)
	assert.Equal(t, model.QuoteSourceCache, after.Source)
}

func TestEngine_EmptyNameSkipsSources(t *testing.T) {
	source := &stubSource{name: "shop", prices: []float64{5000}}
	engine := newTestEngine(source)

	quote := engine.Resolve(context.Background(), model.Product{Category: "RAM"})

	assert.Equal(t, 0, source.calls)
	assert.Equal(t, model.QuoteSourceEstimated, quote.Source)
}
