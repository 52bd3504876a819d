package cache

import (
	"testing"
	"time"
)

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to be cached")
	}
	c.Set("c", "3") // evicts b, the least recently used

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("expected a=1, got %q %v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("expected size 2, got %d", c.Len())
	}
}

func TestLRUCacheTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Second)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}

	c.Set("x", 1)
	c.Set("y", 2)
	now = now.Add(2 * time.Second)
	if n := c.Prune(); n != 2 {
		t.Fatalf("expected 2 cleaned, got %d", n)
	}

	st := c.Stats()
	if st.Misses != 1 || st.Size != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestLRUCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, 0)
	c.now = func() time.Time { return now }
	c.Set("k", 1)
	now = now.Add(24 * time.Hour)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("zero ttl entries should not expire")
	}
}

func TestManagerPruneNow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Second)
	c.now = func() time.Time { return now }
	c.Set("k", 1)

	m := NewManager(nil)
	m.Register(c)
	now = now.Add(time.Minute)
	if n := m.PruneNow(); n != 1 {
		t.Fatalf("expected 1 cleaned, got %d", n)
	}

	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop() // second stop is a no-op
}

func TestLRUCachePurgeKeepsCounters(t *testing.T) {
	c := NewLRUCache[int](4, 0)
	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge, got %d", c.Len())
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if got := st.HitRatio(); got != 0.5 {
		t.Fatalf("expected hit ratio 0.5, got %v", got)
	}
	if got := (Stats{}).HitRatio(); got != 0 {
		t.Fatalf("expected 0 ratio without lookups, got %v", got)
	}
}
