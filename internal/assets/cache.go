package assets

import "sync"

// Cache holds decoded assets by logical name.
type Cache struct {
	data map[string]Asset
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]Asset),
	}
}

// Get retrieves an asset from the cache.
func (c *Cache) Get(name string) (Asset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.data[name]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return a, ok
}

// Set stores an asset, replacing any previous value under the same name.
func (c *Cache) Set(name string, a Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = a
}

// Len returns the number of cached assets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear drops every cached asset and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]Asset)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
