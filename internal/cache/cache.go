package cache

import (
	"context"
	"sync"
	"time"
)

type item struct {
	data      []byte
	expiresAt time.Time
}

// Cache is an in-memory TTL cache for downloaded image bytes, keyed by URL.
// Long-lived consumers re-fetch the same URL for previews; this avoids the
// repeat round trip.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]item
	stopChan chan struct{}
	stopped  bool
}

func New() *Cache {
	return NewWithContext(context.Background())
}

func NewWithContext(ctx context.Context) *Cache {
	c := &Cache{
		items:    make(map[string]item),
		stopChan: make(chan struct{}),
	}
	go c.cleanup(ctx)
	return c
}

func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[url]
	if !ok || time.Now().After(it.expiresAt) {
		return nil, false
	}
	return it.data, true
}

func (c *Cache) Set(url string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	c.items[url] = item{data: data, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(url string) {
	c.mu.Lock()
	delete(c.items, url)
	c.mu.Unlock()
}

func (c *Cache) Stop() {
	c.mu.Lock()
	if !c.stopped {
		c.stopped = true
		close(c.stopChan)
	}
	c.mu.Unlock()
}

// cleanup evicts expired entries every 5 minutes.
func (c *Cache) cleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, k)
		}
	}
}
