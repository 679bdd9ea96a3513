// Package service defines the interfaces and shared value types for all
// application services.
package service

import (
	"context"
	"time"

	"github.com/oneiro-labs/shelfmark/internal/model"
)

// ProductFilter defines paging options for product queries.
type ProductFilter struct {
	Offset int
	Limit  int
}

// Storage defines the contract for the product collection. The pipeline is
// agnostic to the underlying engine; it only needs paged reads, targeted
// updates and counting.
type Storage interface {
	// Product operations
	SaveProducts(ctx context.Context, products []model.Product) error
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	GetProductPage(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	UpdateProductPricing(ctx context.Context, id, category, brand string, quote model.PriceQuote) error
	CountProducts(ctx context.Context) (int, error)

	// Reporting
	GetCategoryDistribution(ctx context.Context) (map[string]int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// BatchSummary reports the outcome of one full orchestrator run.
type BatchSummary struct {
	CategoryDistribution map[string]int
	BrandDistribution    map[string]int
	TotalScanned         int
	TotalUpdated         int
	FailedCount          int
	Duration             time.Duration
}

// PageProgress is emitted after each processed page.
type PageProgress struct {
	Page    int
	Scanned int
	Updated int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
