package cache

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func entryFor(key string, expiresAt time.Time) model.CacheEntry {
	return model.CacheEntry{Fingerprint: key, ExpiresAt: expiresAt, Result: model.RankedResult{Total: 1}}
}

func TestLocalCache_Expiry(t *testing.T) {
	clock := newFakeClock()
	c := NewLocalCache(5*time.Second, 10, clock.Now)
	defer c.Close()

	c.Set(entryFor("long", clock.Now().Add(time.Minute)))
	c.Set(entryFor("short", clock.Now().Add(2*time.Second)))

	_, ok := c.Get("long")
	assert.True(t, ok)
	_, ok = c.Get("short")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("short")
	assert.False(t, ok, "entry expiry caps the local ttl")
	_, ok = c.Get("long")
	assert.True(t, ok)

	clock.Advance(3 * time.Second)
	_, ok = c.Get("long")
	assert.False(t, ok, "local ttl caps the entry expiry")
}

func TestLocalCache_Eviction(t *testing.T) {
	clock := newFakeClock()
	c := NewLocalCache(5*time.Second, 2, clock.Now)
	defer c.Close()

	c.Set(entryFor("a", clock.Now().Add(time.Second)))
	c.Set(entryFor("b", clock.Now().Add(time.Minute)))
	clock.Advance(time.Second)
	c.Set(entryFor("c", clock.Now().Add(time.Minute)))

	assert.Equal(t, 2, c.Size())
	_, ok := c.Get("b")
	assert.True(t, ok, "expired items are evicted first")
	_, ok = c.Get("c")
	assert.True(t, ok)

	c.Set(entryFor("d", clock.Now().Add(time.Minute)))
	assert.Equal(t, 2, c.Size())
}

func TestLocalCache_DeleteFunc(t *testing.T) {
	clock := newFakeClock()
	c := NewLocalCache(5*time.Second, 10, clock.Now)
	defer c.Close()

	c.Set(model.CacheEntry{Fingerprint: "cafe", Categories: []string{"cafe"}, ExpiresAt: clock.Now().Add(time.Minute)})
	c.Set(model.CacheEntry{Fingerprint: "bar", Categories: []string{"bar"}, ExpiresAt: clock.Now().Add(time.Minute)})

	removed := c.DeleteFunc(func(e model.CacheEntry) bool { return e.Categories[0] == "cafe" })
	assert.Equal(t, []string{"cafe"}, removed)
	assert.Equal(t, 1, c.Size())
}

func TestLocalCache_DisabledAndClose(t *testing.T) {
	clock := newFakeClock()
	c := NewLocalCache(0, 10, clock.Now)
	c.Set(entryFor("a", clock.Now().Add(time.Minute)))
	assert.Equal(t, 0, c.Size())
	c.Close()
	c.Close()
}
