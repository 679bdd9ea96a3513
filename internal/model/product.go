// Package model defines the core domain types shared across the pipeline.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Product represents a single catalog record from any source.
type Product struct {
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ID              string
	Name            string // Raw product title as imported; never modified by the pipeline
	Description     string
	Category        string
	Brand           string
	Hash            string
	PriceSource     string
	Price           float64
	MarketPrice     float64
	DiscountPercent int
}

// GenerateHash creates a stable hash for duplicate detection on import.
func (p *Product) GenerateHash() string {
	data := fmt.Sprintf("%s:%s",
		strings.ToLower(strings.TrimSpace(p.Name)),
		strings.ToLower(strings.TrimSpace(p.Description)))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Quote returns the stored pricing fields as a PriceQuote.
func (p *Product) Quote() PriceQuote {
	return PriceQuote{
		Amount:          p.Price,
		MarketPrice:     p.MarketPrice,
		DiscountPercent: p.DiscountPercent,
		Currency:        Currency,
		Source:          QuoteSource(p.PriceSource),
	}
}

// ApplyQuote copies a resolved quote into the product's pricing fields.
func (p *Product) ApplyQuote(q PriceQuote) {
	p.Price = q.Amount
	p.MarketPrice = q.MarketPrice
	p.DiscountPercent = q.DiscountPercent
	p.PriceSource = string(q.Source)
}
