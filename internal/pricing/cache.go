package pricing

import (
	"sync"
	"time"

	"github.com/oneiro-labs/shelfmark/internal/model"
)

// CachePolicy bounds the quote cache. Zero values mean unbounded, no
// expiry, process lifetime.
type CachePolicy struct {
	MaxEntries int
	TTL        time.Duration
}

// QuoteCache stores resolved quotes keyed by (brand, raw name). It is shared
// mutable state between concurrent resolutions and synchronizes all access.
type QuoteCache struct {
	now     func() time.Time
	entries map[string]cacheEntry
	policy  CachePolicy
	mu      sync.RWMutex
}

type cacheEntry struct {
	storedAt time.Time
	quote    model.PriceQuote
}

// NewQuoteCache creates an empty cache with the given policy.
func NewQuoteCache(policy CachePolicy) *QuoteCache {
	return &QuoteCache{
		entries: make(map[string]cacheEntry),
		policy:  policy,
		now:     time.Now,
	}
}

// Key builds the compound cache key for a product.
func Key(brand, name string) string {
	return brand + "|" + name
}

// Get returns the cached quote for key, if present and not expired.
func (c *QuoteCache) Get(key string) (model.PriceQuote, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return model.PriceQuote{}, false
	}

	if c.policy.TTL > 0 && c.now().Sub(entry.storedAt) > c.policy.TTL {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return model.PriceQuote{}, false
	}

	return entry.quote, true
}

// Put stores a quote, evicting an arbitrary entry when the size bound is hit.
func (c *QuoteCache) Put(key string, quote model.PriceQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.policy.MaxEntries > 0 && len(c.entries) >= c.policy.MaxEntries {
		if _, exists := c.entries[key]; !exists {
			for victim := range c.entries {
				delete(c.entries, victim)
				break
			}
		}
	}

	c.entries[key] = cacheEntry{quote: quote, storedAt: c.now()}
}

// Len returns the number of cached quotes.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
