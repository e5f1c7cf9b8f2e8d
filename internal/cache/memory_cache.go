package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is an in-process Cache used when no Redis URL is configured and in tests.
// It holds at most size entries and evicts each one ttl after it was written.
// Values go through JSON so hits never alias the caller's data.
type MemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
	ttl time.Duration
}

type memoryEntry struct {
	data []byte
	// expiresAt is set only when SetJSON asked for a ttl shorter than the cache's.
	expiresAt time.Time
}

// NewMemoryCache creates an empty MemoryCache bounded to size entries with the given ttl.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, memoryEntry](size, nil, ttl), ttl: ttl}
}

func (c *MemoryCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	if !e.expiresAt.IsZero() && !time.Now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return false, nil
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) SetJSON(_ context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	e := memoryEntry{data: b}
	if ttl > 0 && ttl < c.ttl {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.lru.Add(key, e)
	return nil
}

func (c *MemoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.lru.Remove(k)
	}
	return nil
}

// Len reports the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
