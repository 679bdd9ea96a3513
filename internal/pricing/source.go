package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/oneiro-labs/shelfmark/internal/common"
)

// Source fetches candidate prices for a product name from one external
// marketplace. Sources are unreliable by design: any error or empty result
// is a normal "try the next source" outcome.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query string) ([]float64, error)
}

// SourceConfig describes one scrapeable marketplace.
type SourceConfig struct {
	Name string
	// SearchURL is a template with a single %s for the escaped query.
	SearchURL string
	// Selector is the goquery selector for price-bearing elements in the
	// result page.
	Selector string
	// RequestsPerMinute throttles outbound requests; these are public
	// endpoints sensitive to bursts. Zero means 30/min.
	RequestsPerMinute float64
	Timeout           time.Duration
}

// HTTPSource scrapes prices from a marketplace search page.
type HTTPSource struct {
	client    *http.Client
	limiter   *rate.Limiter
	name      string
	searchURL string
	selector  string
}

// NewHTTPSource creates a rate-limited scraping source.
func NewHTTPSource(cfg SourceConfig) *HTTPSource {
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &HTTPSource{
		name:      cfg.Name,
		searchURL: cfg.SearchURL,
		selector:  cfg.Selector,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(perMinute/60), 1),
	}
}

// Name returns the marketplace name.
func (s *HTTPSource) Name() string {
	return s.name
}

// Fetch issues one search request and extracts every price-like token the
// selector finds. Non-positive and unparseable tokens are dropped.
func (s *HTTPSource) Fetch(ctx context.Context, query string) ([]float64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf(s.searchURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; shelfmark/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search request failed: %v", common.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", common.ErrSourceUnavailable, resp.StatusCode, s.name)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse result page: %w", err)
	}

	var prices []float64
	doc.Find(s.selector).Each(func(_ int, sel *goquery.Selection) {
		if value, ok := parsePrice(sel.Text()); ok {
			prices = append(prices, value)
		}
	})

	return prices, nil
}

// DefaultSourceConfigs returns the built-in marketplace list in priority
// order. Like the pattern tables, this is data and can be replaced via the
// external data file.
func DefaultSourceConfigs() []SourceConfig {
	return []SourceConfig{
		{
			Name:              "mdcomputers",
			SearchURL:         "https://mdcomputers.in/index.php?route=product/search&search=%s",
			Selector:          ".price-new, .price",
			RequestsPerMinute: 20,
		},
		{
			Name:              "primeabgb",
			SearchURL:         "https://www.primeabgb.com/?s=%s&post_type=product",
			Selector:          ".woocommerce-Price-amount",
			RequestsPerMinute: 20,
		},
	}
}

// BuildSources constructs HTTP sources from configs, preserving order.
func BuildSources(configs []SourceConfig) []Source {
	sources := make([]Source, len(configs))
	for i, cfg := range configs {
		sources[i] = NewHTTPSource(cfg)
	}
	return sources
}
