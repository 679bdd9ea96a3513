package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oneiro-labs/shelfmark/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrEmptySlice      = errors.New("slice cannot be empty")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuote    = errors.New("invalid price quote")
	ErrProductNotFound = errors.New("product not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProducts validates a slice of products.
func validateProducts(products []model.Product) error {
	if products == nil {
		return fmt.Errorf("%w: products", ErrNilParameter)
	}
	if len(products) == 0 {
		return fmt.Errorf("%w: products", ErrEmptySlice)
	}

	for i, product := range products {
		if err := validateProduct(&product); err != nil {
			return fmt.Errorf("product at index %d: %w", i, err)
		}
	}
	return nil
}

// validateProduct validates a single product.
func validateProduct(product *model.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product", ErrNilParameter)
	}
	if product.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidProduct)
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProduct)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	return nil
}

// validateQuote validates a resolved price quote before persisting it.
func validateQuote(quote model.PriceQuote) error {
	if quote.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidQuote)
	}
	if quote.MarketPrice < quote.Amount {
		return fmt.Errorf("%w: market price below amount", ErrInvalidQuote)
	}
	if quote.DiscountPercent < 0 || quote.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount percent out of range", ErrInvalidQuote)
	}

	switch quote.Source {
	case model.QuoteSourceCache, model.QuoteSourceScraped, model.QuoteSourceEstimated, "":
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidQuote, quote.Source)
	}

	return nil
}
