package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryCache keeps entries in a process-local map. Expired entries are
// dropped lazily on access and by Cleanup.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

// Get returns a copy of the stored value.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.expired(e) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return slices.Clone(e.data), true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: slices.Clone(data)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if !c.expired(e) {
			n++
		}
	}
	return n
}

// Cleanup drops every expired entry.
func (c *MemoryCache) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

var _ Cache = (*MemoryCache)(nil)
