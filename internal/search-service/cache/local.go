package cache

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"sync"
	"time"
)

type localItem struct {
	entry      model.CacheEntry
	expiration time.Time
}

// LocalCache is the in-process tier. Items live for the shorter of the local TTL and
// the entry's own expiry.
type LocalCache struct {
	items   map[string]localItem
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

func NewLocalCache(ttl time.Duration, maxSize int, now func() time.Time) *LocalCache {
	c := &LocalCache{
		items:   make(map[string]localItem),
		ttl:     ttl,
		maxSize: maxSize,
		now:     now,
		stop:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *LocalCache) Get(key string) (model.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || !c.now().Before(item.expiration) {
		return model.CacheEntry{}, false
	}
	return item.entry, true
}

func (c *LocalCache) Set(entry model.CacheEntry) {
	if c.ttl <= 0 {
		return
	}
	now := c.now()
	expiration := now.Add(c.ttl)
	if entry.ExpiresAt.Before(expiration) {
		expiration = entry.ExpiresAt
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[entry.Fingerprint]; !exists && len(c.items) >= c.maxSize {
		c.evictLocked(now)
	}
	c.items[entry.Fingerprint] = localItem{
		entry:      entry,
		expiration: expiration,
	}
}

// evictLocked drops expired items, or one arbitrary item when none has expired.
func (c *LocalCache) evictLocked(now time.Time) {
	evicted := false
	for k, item := range c.items {
		if !now.Before(item.expiration) {
			delete(c.items, k)
			evicted = true
		}
	}
	if evicted {
		return
	}
	for k := range c.items {
		delete(c.items, k)
		return
	}
}

// DeleteFunc removes every live entry matching pred and returns the removed keys.
// Expired entries are dropped along the way but not reported.
func (c *LocalCache) DeleteFunc(pred Predicate) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed []string
	for k, item := range c.items {
		if !now.Before(item.expiration) {
			delete(c.items, k)
			continue
		}
		if pred(item.entry) {
			delete(c.items, k)
			removed = append(removed, k)
		}
	}
	return removed
}

func (c *LocalCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *LocalCache) Close() {
	c.once.Do(func() {
		close(c.stop)
	})
}

func (c *LocalCache) cleanup() {
	interval := c.ttl
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			for key, item := range c.items {
				if !now.Before(item.expiration) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
