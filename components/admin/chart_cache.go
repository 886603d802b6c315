package admin

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated page loads are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is an in-memory TTL cache for rendered chart snippets. A zero or
// negative TTL disables caching entirely and every call renders.
type ChartCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]renderEntry
}

type renderEntry struct {
	html       string
	renderedAt time.Time
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		entries: map[string]renderEntry{},
	}
}

// GetOrRender returns the cached snippet for key or invokes render and stores
// the result. Render errors are returned to the caller and never cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && time.Since(entry.renderedAt) < c.ttl {
		c.mu.Unlock()
		return entry.html, nil
	}
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = renderEntry{html: html, renderedAt: time.Now()}
	c.mu.Unlock()
	return html, nil
}

// configHash derives a stable cache key component from a widget
// configuration. json.Marshal sorts map keys, so logically equal configs hash
// the same regardless of construction order.
func configHash(cfg map[string]any) string {
	if len(cfg) == 0 {
		return "empty"
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return fmt.Sprintf("%016x", h.Sum64())
}
