package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneiro-labs/shelfmark/internal/model"
	"github.com/oneiro-labs/shelfmark/internal/service"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testProduct(id, name string) model.Product {
	p := model.Product{
		ID:          id,
		Name:        name,
		Description: "test product",
	}
	p.Hash = p.GenerateHash()
	return p
}

func TestSaveProducts_AndGetByID(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	products := []model.Product{
		testProduct("p-1", "MSI RTX 4070 Gaming GPU"),
		testProduct("p-2", "Corsair Vengeance 16GB DDR4"),
	}
	require.NoError(t, store.SaveProducts(ctx, products))

	got, err := store.GetProductByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "MSI RTX 4070 Gaming GPU", got.Name)
	assert.Equal(t, "test product", got.Description)
	assert.False(t, got.CreatedAt.IsZero())

	count, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSaveProducts_DuplicateHashIgnored(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	original := testProduct("p-1", "MSI RTX 4070 Gaming GPU")
	require.NoError(t, store.SaveProducts(ctx, []model.Product{original}))

	// Same name and description under a new ID hashes identically.
	duplicate := testProduct("p-other", "MSI RTX 4070 Gaming GPU")
	require.NoError(t, store.SaveProducts(ctx, []model.Product{duplicate}))

	count, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveProducts_Validation(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	err := store.SaveProducts(ctx, nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	err = store.SaveProducts(ctx, []model.Product{})
	assert.ErrorIs(t, err, ErrEmptySlice)

	err = store.SaveProducts(ctx, []model.Product{{ID: "p-1"}})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestGetProductByID_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetProductByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductPage(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	var products []model.Product
	for _, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		products = append(products, testProduct("p-"+name, name))
	}
	require.NoError(t, store.SaveProducts(ctx, products))

	first, err := store.GetProductPage(ctx, service.ProductFilter{Offset: 0, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "alpha", first[0].Name)
	assert.Equal(t, "bravo", first[1].Name)

	// Pages are stable across reads: insertion order, no overlap.
	last, err := store.GetProductPage(ctx, service.ProductFilter{Offset: 4, Limit: 2})
	require.NoError(t, err)
	require.Len(t, last, 1, "short page at the end of the collection")
	assert.Equal(t, "echo", last[0].Name)

	past, err := store.GetProductPage(ctx, service.ProductFilter{Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, past)

	_, err = store.GetProductPage(ctx, service.ProductFilter{Offset: 0, Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestUpdateProductPricing(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, []model.Product{
		testProduct("p-1", "MSI RTX 4070 Gaming GPU"),
	}))

	quote := model.NewQuote(58000, model.QuoteSourceScraped)
	require.NoError(t, store.UpdateProductPricing(ctx, "p-1", "GPU", "MSI", quote))

	got, err := store.GetProductByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "GPU", got.Category)
	assert.Equal(t, "MSI", got.Brand)
	assert.InDelta(t, 58000, got.Price, 0.001)
	assert.InDelta(t, quote.MarketPrice, got.MarketPrice, 0.001)
	assert.Equal(t, quote.DiscountPercent, got.DiscountPercent)
	assert.Equal(t, string(model.QuoteSourceScraped), got.PriceSource)

	// Raw fields are untouched by pricing updates.
	assert.Equal(t, "MSI RTX 4070 Gaming GPU", got.Name)
	assert.Equal(t, "test product", got.Description)
}

func TestUpdateProductPricing_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	quote := model.NewQuote(1000, model.QuoteSourceEstimated)
	err := store.UpdateProductPricing(context.Background(), "missing", "GPU", "", quote)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProductPricing_RejectsInvalidQuote(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, []model.Product{
		testProduct("p-1", "MSI RTX 4070 Gaming GPU"),
	}))

	bad := model.PriceQuote{Amount: -5, Currency: model.Currency, Source: model.QuoteSourceScraped}
	err := store.UpdateProductPricing(ctx, "p-1", "GPU", "MSI", bad)
	assert.ErrorIs(t, err, ErrInvalidQuote)
}

func TestGetProductsByCategory(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, []model.Product{
		testProduct("p-1", "MSI RTX 4070 Gaming GPU"),
		testProduct("p-2", "Corsair Vengeance 16GB DDR4"),
	}))

	quote := model.NewQuote(58000, model.QuoteSourceScraped)
	require.NoError(t, store.UpdateProductPricing(ctx, "p-1", "GPU", "MSI", quote))

	matched, err := store.GetProductsByCategory(ctx, "gpu")
	require.NoError(t, err)
	require.Len(t, matched, 1, "stored category matches case-insensitively")
	assert.Equal(t, "p-1", matched[0].ID)

	none, err := store.GetProductsByCategory(ctx, "Monitor")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetCategoryDistribution(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProducts(ctx, []model.Product{
		testProduct("p-1", "MSI RTX 4070 Gaming GPU"),
		testProduct("p-2", "ASUS TUF RTX 4080"),
		testProduct("p-3", "Corsair Vengeance 16GB DDR4"),
	}))

	quote := model.NewQuote(58000, model.QuoteSourceScraped)
	require.NoError(t, store.UpdateProductPricing(ctx, "p-1", "GPU", "MSI", quote))
	require.NoError(t, store.UpdateProductPricing(ctx, "p-2", "GPU", "ASUS", quote))

	distribution, err := store.GetCategoryDistribution(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, distribution["GPU"])
	assert.Equal(t, 1, distribution[""], "unlabeled products group under the empty key")
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestStorage(t)

	// A second migration pass is a no-op at the latest version.
	require.NoError(t, store.Migrate(context.Background()))
}
