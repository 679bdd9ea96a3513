package model

import "math"

// QuoteSource identifies which resolution step produced a price quote.
type QuoteSource string

const (
	// QuoteSourceCache marks quotes served from the in-process quote cache.
	QuoteSourceCache QuoteSource = "cache"
	// QuoteSourceScraped marks quotes derived from live marketplace listings.
	QuoteSourceScraped QuoteSource = "scraped"
	// QuoteSourceEstimated marks quotes produced by the heuristic estimator.
	QuoteSourceEstimated QuoteSource = "estimated"
)

// Currency is the fixed pricing unit for all quotes.
const Currency = "INR"

// marketMarkup is the factor applied to the resolved amount to derive the
// displayed market price.
const marketMarkup = 1.2

// PriceQuote is the resolved price for a product.
type PriceQuote struct {
	Currency        string
	Source          QuoteSource
	Amount          float64
	MarketPrice     float64
	DiscountPercent int
}

// NewQuote builds a quote from a resolved amount, deriving the market price
// and discount so that MarketPrice >= Amount and
// DiscountPercent = round((MarketPrice-Amount)/MarketPrice*100).
func NewQuote(amount float64, source QuoteSource) PriceQuote {
	if amount < 0 {
		amount = 0
	}

	market := math.Round(amount * marketMarkup)
	// Rounding can pull the market price under small amounts; the quote
	// invariant requires MarketPrice >= Amount.
	if market < amount {
		market = math.Ceil(amount)
	}
	discount := 0
	if market > 0 {
		discount = int(math.Round((market - amount) / market * 100))
	}

	return PriceQuote{
		Amount:          amount,
		MarketPrice:     market,
		DiscountPercent: discount,
		Currency:        Currency,
		Source:          source,
	}
}
