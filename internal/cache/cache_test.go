package cache

import (
	"testing"
	"time"
)

func TestCacheHitAndMiss(t *testing.T) {
	c := New[string, int](time.Minute)

	if _, ok := c.Get("g1"); ok {
		t.Error("expected miss on empty cache")
	}

	c.Set("g1", 42)
	got, ok := c.Get("g1")
	if !ok || got != 42 {
		t.Errorf("Get = (%d, %v), want (42, true)", got, ok)
	}

	if _, ok := c.Get("g2"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New[string, int](10 * time.Millisecond)
	c.Set("g1", 1)

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("g1"); ok {
		t.Error("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after expired read", c.Len())
	}
}

func TestCacheNoExpiryWhenDisabled(t *testing.T) {
	c := New[string, int](0)
	c.Set("g1", 1)

	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get("g1"); !ok {
		t.Error("expected entry to survive with expiry disabled")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("g1", 1)
	c.Set("g2", 2)

	c.Invalidate("g1")

	if _, ok := c.Get("g1"); ok {
		t.Error("expected invalidated entry to be gone")
	}
	if _, ok := c.Get("g2"); !ok {
		t.Error("expected other entries to survive")
	}
}

func TestCacheNilSafe(t *testing.T) {
	var c *TTLCache[string, int]

	c.Set("g1", 1)
	if _, ok := c.Get("g1"); ok {
		t.Error("nil cache should always miss")
	}
	c.Invalidate("g1")
	if c.Len() != 0 {
		t.Error("nil cache Len should be 0")
	}
}
