// Package cache provides a small in-memory TTL cache used to reuse
// balance summaries between reads of the same group.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache stores values in memory with a shared TTL. Writes to a
// group (new expense, new settlement) invalidate its entry, so the
// TTL only bounds staleness across concurrent readers.
type TTLCache[K comparable, V any] struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[K]entry[V]
}

// New constructs a TTLCache. A zero or negative ttl disables
// expiry; entries then live until invalidated.
func New[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		ttl:   ttl,
		items: make(map[K]entry[V]),
	}
}

// Get returns the cached value for key if present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.Invalidate(key)
		return zero, false
	}
	return e.value, true
}

// Set stores a value under key.
func (c *TTLCache[K, V]) Set(key K, value V) {
	if c == nil {
		return
	}
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Invalidate drops the entry for key, if any.
func (c *TTLCache[K, V]) Invalidate(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len reports the number of live entries, counting expired ones
// that have not been read since expiry.
func (c *TTLCache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
