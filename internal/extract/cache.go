package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache is a bounded, TTL-bearing cache of extraction results.
// go-cache handles expiry; capacity is enforced here with oldest-by-insertion
// eviction. Reads and writes are mutex-guarded: the read-then-write on miss
// would otherwise race duplicate entries under concurrent requests.
type ResponseCache struct {
	mu       sync.Mutex
	store    *gocache.Cache
	order    []string
	capacity int
}

// NewResponseCache creates a cache holding at most capacity entries, each
// expiring after ttl.
func NewResponseCache(capacity int, ttl time.Duration) *ResponseCache {
	if capacity <= 0 {
		capacity = 128
	}
	return &ResponseCache{
		store:    gocache.New(ttl, ttl),
		capacity: capacity,
	}
}

// CacheKey derives the lookup key from whitespace-normalized content, the
// prompt, and the provider name, so the same article re-extracted with the
// same instruction hits regardless of surrounding whitespace.
func CacheKey(content, prompt, providerName string) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(content)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(prompt)))
	h.Write([]byte{0})
	h.Write([]byte(providerName))
	return "nugget:v1:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key, if present and unexpired.
func (c *ResponseCache) Get(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	return v.(*Result), true
}

// Put stores a result, evicting the oldest-inserted entry when the cache is
// at capacity. Re-putting an existing key refreshes the value without
// changing its insertion position.
func (c *ResponseCache) Put(key string, r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store.Get(key); !exists {
		if len(c.order) >= c.capacity {
			c.evictOldestLocked()
		}
		c.order = append(c.order, key)
	}
	c.store.Set(key, r, gocache.DefaultExpiration)
}

// Len returns the number of tracked entries, including any that expired but
// have not yet been evicted by capacity pressure.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// evictOldestLocked removes the entry that was inserted first. Expired
// entries occupy insertion slots until evicted, which keeps the policy a
// plain FIFO rather than an accidental consequence of map iteration order.
func (c *ResponseCache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	c.store.Delete(oldest)
}
