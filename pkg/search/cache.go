// Package search combines the provider clients into one best-effort search
// service. It memoizes aggregated results for a short window so incremental
// search-as-you-type does not hammer the providers with repeated queries.
package search

import (
	"strings"
	"sync"
	"time"

	"Tune-Preview-Go/pkg/music"
)

// TTL is how long a cached query stays valid. Ten minutes matches the burst
// pattern the cache exists for; it is not long-term storage.
const TTL = 10 * time.Minute

type cacheEntry struct {
	results  []music.Track
	storedAt time.Time
}

// Cache memoizes search results keyed by the lowercased query. There is no
// capacity bound and no background eviction: expired entries are removed
// lazily when they are next looked up.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry

	// now is swappable in tests to exercise expiry without sleeping.
	now func() time.Time
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry), now: time.Now}
}

// Lookup returns the cached results for query and whether they were found.
// An expired entry is evicted and reported as a miss. A hit does not refresh
// the entry's TTL.
func (c *Cache) Lookup(query string) ([]music.Track, bool) {
	key := strings.ToLower(query)
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= TTL {
		delete(c.entries, key)
		return nil, false
	}
	return entry.results, true
}

// Store inserts or overwrites the results for query, stamped with the
// current time. Empty result sets are stored too: a query that matched
// nothing should not trigger fresh provider round-trips within the window.
func (c *Cache) Store(query string, results []music.Track) {
	key := strings.ToLower(query)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{results: results, storedAt: c.now()}
}

// Len reports the number of live entries, expired or not. Used by tests and
// the metrics gauge.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
