package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// sweepInterval is the minimum gap between full scans for expired entries
const sweepInterval = time.Minute

// Cache is an in-memory key/value store with per-entry TTL. Expired entries
// are evicted when read and swept on writes, so keys that are never read again
// do not pile up.
type Cache[V any] struct {
	items     map[string]entry[V]
	mutex     sync.Mutex
	now       func() time.Time
	lastSweep time.Time
}

// New creates an empty cache
func New[V any]() *Cache[V] {
	return &Cache[V]{
		items: make(map[string]entry[V]),
		now:   time.Now,
	}
}

// Get returns a live entry; expired entries are evicted on read
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var zero V
	item, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return item.value, true
}

// Set stores value for ttl
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= sweepInterval {
		c.sweep(now)
	}
	c.items[key] = entry[V]{value: value, expiresAt: now.Add(ttl)}
}

// sweep drops every expired entry. Callers hold the lock.
func (c *Cache[V]) sweep(now time.Time) {
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
		}
	}
	c.lastSweep = now
}

// GetOrSet returns the cached value or computes, stores and returns a new one.
// compute runs outside the lock and may run twice for the same key under contention.
func (c *Cache[V]) GetOrSet(key string, ttl time.Duration, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Set(key, v, ttl)
	return v
}

// Clear removes everything and reports how many entries were dropped
func (c *Cache[V]) Clear() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	n := len(c.items)
	c.items = make(map[string]entry[V])
	return n
}
