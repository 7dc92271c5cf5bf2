package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is a small in-memory byte cache with TTL, used to absorb read
// bursts on the status API between aggregation passes.
type Cache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]entry
	stop chan struct{}
}

// New creates a cache with the given TTL and starts its janitor.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		data: make(map[string]entry),
		stop: make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.data {
				if now.After(e.expiresAt) {
					delete(c.data, k)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// Stop terminates the janitor goroutine.
func (c *Cache) Stop() {
	close(c.stop)
}

// Get returns the cached bytes for key if present and fresh.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for the cache's TTL.
func (c *Cache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}
