package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/oneiro-labs/shelfmark/internal/classify"
	"github.com/oneiro-labs/shelfmark/internal/config"
	"github.com/oneiro-labs/shelfmark/internal/normalize"
	"github.com/oneiro-labs/shelfmark/internal/pricing"
	"github.com/oneiro-labs/shelfmark/internal/service"
	"github.com/oneiro-labs/shelfmark/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadTables reads the external rule tables, falling back to built-in
// defaults when no file is configured.
func loadTables() (*config.Tables, error) {
	path := viper.GetString("tables.path")
	if path != "" {
		path = config.ExpandPath(path)
	}

	tables, err := config.LoadTables(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule tables: %w", err)
	}

	return tables, nil
}

// buildClassifier constructs a classifier from the configured rule tables.
func buildClassifier(tables *config.Tables) (*classify.Classifier, error) {
	categories, brands := tables.ClassifierRules()
	return classify.New(categories, brands)
}

// buildRegistry constructs a category registry from the configured groups.
func buildRegistry(tables *config.Tables) (*normalize.Registry, error) {
	return normalize.NewRegistry(tables.CategoryGroups())
}

// buildEngine assembles the price resolution engine: quote cache, scrape
// sources, and heuristic estimator, wired per configuration.
func buildEngine(tables *config.Tables) *pricing.Engine {
	policy := pricing.CachePolicy{
		MaxEntries: viper.GetInt("pricing.cache_size"),
		TTL:        viper.GetDuration("pricing.cache_ttl"),
	}

	cache := pricing.NewQuoteCache(policy)
	sources := pricing.BuildSources(tables.SourceConfigs())
	estimator := tables.Estimator()

	engine := pricing.NewEngine(cache, sources, estimator)

	if attempts := viper.GetInt("pricing.retry_attempts"); attempts > 1 {
		engine.SetRetry(service.RetryOptions{
			MaxAttempts:  attempts,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
		})
	}

	return engine
}
