// Package batch walks the full product collection in fixed-size pages,
// applies classification and price resolution to each record, and persists
// only the records whose derived fields actually changed.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oneiro-labs/shelfmark/internal/classify"
	"github.com/oneiro-labs/shelfmark/internal/model"
	"github.com/oneiro-labs/shelfmark/internal/pricing"
	"github.com/oneiro-labs/shelfmark/internal/service"
)

// Reporter receives progress notifications during a batch run. Counts are
// cumulative. Reporting is a side effect only; it never affects control
// flow.
type Reporter interface {
	BatchStarted(total int)
	PageCompleted(progress service.PageProgress)
	BatchCompleted(summary *service.BatchSummary)
}

// Options configure one orchestrator run.
type Options struct {
	PageSize int
	// RepriceUnchanged re-resolves the price even when classification did
	// not change the labels. On by default to match the historical
	// behavior of the job; turning it off skips source lookups for
	// records whose labels and price are already settled.
	RepriceUnchanged bool
	// DryRun counts would-be updates without writing.
	DryRun bool
}

// DefaultOptions returns the default batch configuration.
func DefaultOptions() Options {
	return Options{
		PageSize:         100,
		RepriceUnchanged: true,
	}
}

// nopReporter discards all progress notifications.
type nopReporter struct{}

func (nopReporter) BatchStarted(int)                     {}
func (nopReporter) PageCompleted(service.PageProgress)   {}
func (nopReporter) BatchCompleted(*service.BatchSummary) {}

// Orchestrator applies the classification and pricing pipeline across the
// persisted collection.
type Orchestrator struct {
	storage    service.Storage
	classifier *classify.Classifier
	pricer     *pricing.Engine
	reporter   Reporter
	opts       Options
}

// New creates an orchestrator. Pages are processed strictly sequentially to
// bound load on both the database and the external price sources.
func New(storage service.Storage, classifier *classify.Classifier, pricer *pricing.Engine, opts Options) *Orchestrator {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultOptions().PageSize
	}

	return &Orchestrator{
		storage:    storage,
		classifier: classifier,
		pricer:     pricer,
		reporter:   nopReporter{},
		opts:       opts,
	}
}

// SetReporter installs a progress reporter.
func (o *Orchestrator) SetReporter(reporter Reporter) {
	if reporter != nil {
		o.reporter = reporter
	}
}

// Run walks the collection page by page until a short page signals the end.
// A rerun always restarts at offset zero; idempotence comes from the
// write-on-change comparison, not from persisted progress.
func (o *Orchestrator) Run(ctx context.Context) (*service.BatchSummary, error) {
	started := time.Now()

	summary := &service.BatchSummary{
		CategoryDistribution: make(map[string]int),
		BrandDistribution:    make(map[string]int),
	}

	total, err := o.storage.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	slog.Info("Starting batch run",
		"total_products", total,
		"page_size", o.opts.PageSize,
		"dry_run", o.opts.DryRun)
	o.reporter.BatchStarted(total)

	for page := 0; ; page++ {
		products, err := o.storage.GetProductPage(ctx, service.ProductFilter{
			Offset: page * o.opts.PageSize,
			Limit:  o.opts.PageSize,
		})
		if err != nil {
			return summary, fmt.Errorf("failed to read page %d: %w", page, err)
		}

		for i := range products {
			// Stop between records, never between the comparison
			// and its write.
			select {
			case <-ctx.Done():
				summary.Duration = time.Since(started)
				return summary, ctx.Err()
			default:
			}

			o.processProduct(ctx, &products[i], summary)
		}

		o.reporter.PageCompleted(service.PageProgress{
			Page:    page,
			Scanned: summary.TotalScanned,
			Updated: summary.TotalUpdated,
		})

		slog.Debug("Page completed",
			"page", page,
			"scanned", summary.TotalScanned,
			"updated", summary.TotalUpdated)

		// A short page means the collection is exhausted.
		if len(products) < o.opts.PageSize {
			break
		}
	}

	summary.Duration = time.Since(started)
	o.reporter.BatchCompleted(summary)

	slog.Info("Batch run complete",
		"scanned", summary.TotalScanned,
		"updated", summary.TotalUpdated,
		"failed", summary.FailedCount,
		"duration", summary.Duration)

	return summary, nil
}

// processProduct derives labels and a price for one record and persists
// them only when at least one differs from the stored values.
func (o *Orchestrator) processProduct(ctx context.Context, product *model.Product, summary *service.BatchSummary) {
	summary.TotalScanned++

	result := o.classifier.Classify(product.Name)
	if result.IsEmpty() {
		slog.Debug("No classification patterns matched",
			"product_id", product.ID,
			"name", product.Name)
	}

	// An unmatched name keeps whatever labels the record already has;
	// the pipeline never blanks a previously assigned label.
	category := product.Category
	if result.Category != "" {
		category = result.Category
	}
	brand := product.Brand
	if result.Brand != "" {
		brand = result.Brand
	}

	labelsChanged := category != product.Category || brand != product.Brand

	var quote model.PriceQuote
	if o.opts.RepriceUnchanged || labelsChanged || product.Price == 0 {
		derived := *product
		derived.Category = category
		derived.Brand = brand
		quote = o.pricer.Resolve(ctx, derived)
	} else {
		quote = product.Quote()
	}

	tallyDistribution(summary, category, brand)

	if !labelsChanged && quote.Amount == product.Price {
		return
	}

	if o.opts.DryRun {
		summary.TotalUpdated++
		return
	}

	if err := o.storage.UpdateProductPricing(ctx, product.ID, category, brand, quote); err != nil {
		slog.Error("Failed to update product, skipping",
			"product_id", product.ID,
			"error", err)
		summary.FailedCount++
		return
	}

	summary.TotalUpdated++
}

func tallyDistribution(summary *service.BatchSummary, category, brand string) {
	if category == "" {
		category = "uncategorized"
	}
	if brand == "" {
		brand = "unbranded"
	}
	summary.CategoryDistribution[category]++
	summary.BrandDistribution[brand]++
}
