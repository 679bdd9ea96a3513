package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneiro-labs/shelfmark/internal/classify"
	"github.com/oneiro-labs/shelfmark/internal/model"
	"github.com/oneiro-labs/shelfmark/internal/pricing"
	"github.com/oneiro-labs/shelfmark/internal/service"
)

// mockStorage is an in-memory Storage that applies pricing updates, so a
// second orchestrator run observes the first run's writes.
type mockStorage struct {
	countErr  error
	failIDs   map[string]bool
	products  []model.Product
	updates   int
	pageReads int
}

func (m *mockStorage) SaveProducts(_ context.Context, products []model.Product) error {
	m.products = append(m.products, products...)
	return nil
}

func (m *mockStorage) GetProductByID(_ context.Context, id string) (*model.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			product := m.products[i]
			return &product, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockStorage) GetProductPage(_ context.Context, filter service.ProductFilter) ([]model.Product, error) {
	m.pageReads++

	if filter.Offset >= len(m.products) {
		return nil, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(m.products) {
		end = len(m.products)
	}

	page := make([]model.Product, end-filter.Offset)
	copy(page, m.products[filter.Offset:end])
	return page, nil
}

func (m *mockStorage) GetProductsByCategory(_ context.Context, category string) ([]model.Product, error) {
	var matched []model.Product
	for _, p := range m.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (m *mockStorage) UpdateProductPricing(_ context.Context, id, category, brand string, quote model.PriceQuote) error {
	if m.failIDs[id] {
		return errors.New("disk full")
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Category = category
			m.products[i].Brand = brand
			m.products[i].ApplyQuote(quote)
			m.updates++
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockStorage) CountProducts(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.products), nil
}

func (m *mockStorage) GetCategoryDistribution(_ context.Context) (map[string]int, error) {
	dist := make(map[string]int)
	for _, p := range m.products {
		dist[p.Category]++
	}
	return dist, nil
}

func (m *mockStorage) Migrate(_ context.Context) error { return nil }
func (m *mockStorage) Close() error                    { return nil }

// recordingReporter captures progress notifications for assertions.
type recordingReporter struct {
	summary *service.BatchSummary
	pages   []service.PageProgress
	total   int
}

func (r *recordingReporter) BatchStarted(total int) { r.total = total }

func (r *recordingReporter) PageCompleted(progress service.PageProgress) {
	r.pages = append(r.pages, progress)
}

func (r *recordingReporter) BatchCompleted(summary *service.BatchSummary) {
	r.summary = summary
}

func seedProducts(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		products[i] = model.Product{
			ID:   fmt.Sprintf("prod-%03d", i),
			Name: fmt.Sprintf("MSI GeForce RTX 4070 Graphics Card #%03d", i),
		}
	}
	return products
}

func newTestOrchestrator(store service.Storage, opts Options) *Orchestrator {
	engine := pricing.NewEngine(pricing.NewQuoteCache(pricing.CachePolicy{}), nil, pricing.DefaultEstimator())
	return New(store, classify.Default(), engine, opts)
}

func TestOrchestrator_PagedWalk(t *testing.T) {
	store := &mockStorage{products: seedProducts(150)}
	o := newTestOrchestrator(store, Options{PageSize: 100, RepriceUnchanged: true})

	reporter := &recordingReporter{}
	o.SetReporter(reporter)

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 150, summary.TotalScanned)
	assert.Equal(t, 150, summary.TotalUpdated)
	assert.Equal(t, 0, summary.FailedCount)
	assert.Equal(t, 150, summary.CategoryDistribution["GPU"])
	assert.Equal(t, 150, summary.BrandDistribution["MSI"])

	// Two pages: a full one, then a short one that ends the walk.
	assert.Equal(t, 2, store.pageReads)
	assert.Equal(t, 150, reporter.total)
	require.Len(t, reporter.pages, 2)
	assert.Equal(t, 100, reporter.pages[0].Scanned)
	assert.Equal(t, 150, reporter.pages[1].Scanned)
	require.NotNil(t, reporter.summary)
}

func TestOrchestrator_ExactPageMultiple(t *testing.T) {
	store := &mockStorage{products: seedProducts(200)}
	o := newTestOrchestrator(store, Options{PageSize: 100, RepriceUnchanged: true})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, summary.TotalScanned)
	// The empty trailing page is read to detect exhaustion.
	assert.Equal(t, 3, store.pageReads)
}

func TestOrchestrator_SecondRunWritesNothing(t *testing.T) {
	store := &mockStorage{products: seedProducts(25)}
	o := newTestOrchestrator(store, Options{PageSize: 10, RepriceUnchanged: true})

	first, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, first.TotalUpdated)
	assert.Equal(t, 25, store.updates)

	second, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, second.TotalScanned)
	assert.Equal(t, 0, second.TotalUpdated, "unchanged records must not be rewritten")
	assert.Equal(t, 25, store.updates)
}

func TestOrchestrator_WriteFailureSkipsRecord(t *testing.T) {
	store := &mockStorage{
		products: seedProducts(5),
		failIDs:  map[string]bool{"prod-002": true},
	}
	o := newTestOrchestrator(store, Options{PageSize: 10, RepriceUnchanged: true})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalScanned)
	assert.Equal(t, 4, summary.TotalUpdated)
	assert.Equal(t, 1, summary.FailedCount)
}

func TestOrchestrator_UnmatchedNameKeepsLabels(t *testing.T) {
	store := &mockStorage{products: []model.Product{
		{
			ID:       "prod-000",
			Name:     "Completely Unrecognizable Item",
			Category: "GPU",
			Brand:    "MSI",
			Price:    15000,
		},
	}}
	o := newTestOrchestrator(store, Options{PageSize: 10})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CategoryDistribution["GPU"])
	assert.Equal(t, 1, summary.BrandDistribution["MSI"])
	assert.Equal(t, "GPU", store.products[0].Category)
	assert.Equal(t, "MSI", store.products[0].Brand)
}

func TestOrchestrator_UnclassifiedTally(t *testing.T) {
	store := &mockStorage{products: []model.Product{
		{ID: "prod-000", Name: "Completely Unrecognizable Item"},
	}}
	o := newTestOrchestrator(store, Options{PageSize: 10, RepriceUnchanged: true})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CategoryDistribution["uncategorized"])
	assert.Equal(t, 1, summary.BrandDistribution["unbranded"])
}

func TestOrchestrator_DryRunWritesNothing(t *testing.T) {
	store := &mockStorage{products: seedProducts(10)}
	o := newTestOrchestrator(store, Options{PageSize: 10, RepriceUnchanged: true, DryRun: true})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, summary.TotalUpdated)
	assert.Equal(t, 0, store.updates)
	assert.Empty(t, store.products[0].Category, "dry run must not mutate records")
}

func TestOrchestrator_SkipUnchangedRepricesZeroPrice(t *testing.T) {
	store := &mockStorage{products: []model.Product{
		{ID: "prod-000", Name: "MSI RTX 4070 Gaming GPU", Category: "GPU", Brand: "MSI"},
	}}
	o := newTestOrchestrator(store, Options{PageSize: 10, RepriceUnchanged: false})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	// Labels unchanged but price was never resolved, so it still prices.
	assert.Equal(t, 1, summary.TotalUpdated)
	assert.Greater(t, store.products[0].Price, 0.0)
}

func TestOrchestrator_CountErrorAborts(t *testing.T) {
	store := &mockStorage{countErr: errors.New("database locked")}
	o := newTestOrchestrator(store, DefaultOptions())

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count products")
}

func TestOrchestrator_CancelledContextStops(t *testing.T) {
	store := &mockStorage{products: seedProducts(10)}
	o := newTestOrchestrator(store, Options{PageSize: 10, RepriceUnchanged: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := o.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.TotalScanned)
	assert.Equal(t, 0, store.updates)
}

func TestOrchestrator_EmptyCollection(t *testing.T) {
	store := &mockStorage{}
	o := newTestOrchestrator(store, DefaultOptions())

	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalScanned)
	assert.Equal(t, 0, summary.TotalUpdated)
}
