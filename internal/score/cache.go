package score

import (
	"sync"

	"github.com/portscout/portscout/internal/model"
)

// Cache stores computed breakdowns keyed by coordinate. Implementations
// must be safe for concurrent use; a miss may be recomputed by several
// goroutines at once, which is fine because the value is deterministic for
// a stable data snapshot.
type Cache interface {
	Get(key string) (model.Breakdown, bool)
	Set(key string, b model.Breakdown)
}

// MemoryCache is a process-lifetime in-memory Cache.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]model.Breakdown
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]model.Breakdown)}
}

// Get returns the cached breakdown for key, if present.
func (c *MemoryCache) Get(key string) (model.Breakdown, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.items[key]
	return b, ok
}

// Set stores a breakdown under key.
func (c *MemoryCache) Set(key string, b model.Breakdown) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
