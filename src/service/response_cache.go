package service

import (
	"fmt"
	"sync"
	"time"
)

// TTL per data kind: quotes go stale in minutes, daily indicators and the
// symbol universe survive a day.
const (
	QuoteTTL          = time.Minute * 5
	SeriesTTL         = time.Minute * 15
	DailyIndicatorTTL = time.Hour * 24
	ListingsTTL       = time.Hour * 24
)

type cacheEntry struct {
	value    interface{}
	storedAt time.Time
}

// ResponseCache is the process-lifetime memoization layer for upstream
// responses. It is constructed explicitly and injected, never module-level
// state, so tests can reset it between cases. Entries are only invalidated
// by the TTL check on read, there is no size bound and no eviction loop.
type ResponseCache struct {
	Now func() time.Time

	entries map[string]cacheEntry
	lock    sync.Mutex
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		Now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get is a hit only while now - storedAt < ttl. An expired entry reads as a
// miss and the caller is expected to re-fetch and overwrite.
func (c *ResponseCache) Get(key string, ttl time.Duration) (interface{}, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	entry, exist := c.entries[key]
	if !exist {
		return nil, false
	}

	if c.Now().Sub(entry.storedAt) >= ttl {
		return nil, false
	}

	return entry.value, true
}

func (c *ResponseCache) Set(key string, value interface{}) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.entries[key] = cacheEntry{
		value:    value,
		storedAt: c.Now(),
	}
}

func (c *ResponseCache) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func CacheKey(kind string, symbol string) string {
	return fmt.Sprintf("%s_%s", kind, symbol)
}
