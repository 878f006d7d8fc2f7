// Package cache keeps rendered read responses per route so repeated list
// requests skip the database until a write invalidates them.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// ViewCache stores response bodies by route path and a variant key (usually
// the raw query string). Invalidating a path drops every variant of it and
// of the paths nested below it.
//
// Get hands out the generation of the path it missed on; Set discards a body
// whose generation has moved since, so a read that overlapped a write cannot
// repopulate the invalidated view.
type ViewCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]*entry
	gens    map[string]uint64
	size    int
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

func NewViewCache(ttl time.Duration, maxSize int) *ViewCache {
	return &ViewCache{
		entries: make(map[string]map[string]*entry),
		gens:    make(map[string]uint64),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the cached body and the current generation of path.
func (c *ViewCache) Get(path, key string) ([]byte, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	gen := c.generation(path)
	e, ok := c.entries[path][key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, gen, false
	}
	return e.body, gen, true
}

// Set stores body unless path was invalidated after gen was read.
func (c *ViewCache) Set(path, key string, gen uint64, body []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation(path) {
		return false
	}

	if _, exists := c.entries[path][key]; !exists {
		if c.size >= c.maxSize {
			c.evictOldest()
		}
		c.size++
	}

	variants, ok := c.entries[path]
	if !ok {
		variants = make(map[string]*entry)
		c.entries[path] = variants
	}
	variants[key] = &entry{
		body:      body,
		expiresAt: c.now().Add(c.ttl),
	}
	return true
}

// Invalidate marks path stale. It never fails.
func (c *ViewCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	root := strings.TrimSuffix(path, "/")
	c.gens[root]++

	prefix := root + "/"
	for p, variants := range c.entries {
		if p == path || strings.HasPrefix(p, prefix) {
			c.size -= len(variants)
			delete(c.entries, p)
		}
	}
}

// generation sums the counters of path and every ancestor, so invalidating
// a parent also moves the generation of the paths nested under it.
func (c *ViewCache) generation(path string) uint64 {
	var gen uint64
	p := strings.TrimSuffix(path, "/")
	for {
		gen += c.gens[p]
		i := strings.LastIndex(p, "/")
		if i < 0 {
			return gen
		}
		p = p[:i]
	}
}

func (c *ViewCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

func (c *ViewCache) evictOldest() {
	var (
		oldestPath, oldestKey string
		oldestTime            time.Time
		found                 bool
	)

	for p, variants := range c.entries {
		for k, e := range variants {
			if !found || e.expiresAt.Before(oldestTime) {
				oldestPath, oldestKey, oldestTime = p, k, e.expiresAt
				found = true
			}
		}
	}

	if found {
		c.remove(oldestPath, oldestKey)
	}
}

func (c *ViewCache) remove(path, key string) {
	variants := c.entries[path]
	if _, ok := variants[key]; !ok {
		return
	}
	delete(variants, key)
	c.size--
	if len(variants) == 0 {
		delete(c.entries, path)
	}
}

func (c *ViewCache) purgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for p, variants := range c.entries {
		for k, e := range variants {
			if now.After(e.expiresAt) {
				c.remove(p, k)
				removed++
			}
		}
	}
	return removed
}

// Run purges expired entries every interval until ctx is done.
func (c *ViewCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purgeExpired()
		}
	}
}
