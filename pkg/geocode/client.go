package geocode

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Client geocodes free-text queries.
type Client interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// cacheKey returns SHA-256 hex of the normalized query for cache lookup.
func cacheKey(query string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

// CascadeClient tries providers in order until one produces a match, with
// an in-memory cache keyed by normalized query. Non-matches are cached too
// so repeated bad input skips the network entirely.
type CascadeClient struct {
	providers    []Provider
	cacheEnabled bool

	mu    sync.RWMutex
	cache map[string]Result
}

// CascadeOption configures the CascadeClient.
type CascadeOption func(*CascadeClient)

// WithCacheEnabled enables or disables the in-memory result cache.
func WithCacheEnabled(enabled bool) CascadeOption {
	return func(c *CascadeClient) {
		c.cacheEnabled = enabled
	}
}

// NewCascadeClient creates a CascadeClient that tries providers in order.
func NewCascadeClient(providers []Provider, opts ...CascadeOption) *CascadeClient {
	c := &CascadeClient{
		providers:    providers,
		cacheEnabled: true,
		cache:        make(map[string]Result),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode implements Client by trying each provider in order.
func (c *CascadeClient) Geocode(ctx context.Context, query string) (*Result, error) {
	key := cacheKey(query)

	if c.cacheEnabled {
		c.mu.RLock()
		cached, ok := c.cache[key]
		c.mu.RUnlock()
		if ok {
			zap.L().Debug("geocode cache hit", zap.String("key", key[:12]), zap.Bool("matched", cached.Matched))
			return &cached, nil
		}
	}

	for _, p := range c.providers {
		if !p.Available() {
			continue
		}
		result, err := p.Geocode(ctx, query)
		if err != nil {
			zap.L().Debug("geocode: provider error, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}
		if result != nil && result.Matched {
			c.store(key, *result)
			return result, nil
		}
	}

	// All providers missed. Cache the negative result.
	noMatch := Result{Matched: false, Source: "cascade"}
	c.store(key, noMatch)
	return &noMatch, nil
}

func (c *CascadeClient) store(key string, r Result) {
	if !c.cacheEnabled {
		return
	}
	c.mu.Lock()
	c.cache[key] = r
	c.mu.Unlock()
}
