package cache

import (
	"context"
	"sync"
	"time"
)

type memoryCache struct {
	mu    sync.RWMutex
	entry *Entry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryCache is the in-process cache used by the CLI and by servers
// running without Redis.
func NewMemoryCache(ttl time.Duration) FeedCache {
	return &memoryCache{
		ttl: ttl,
		now: time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context) (*Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return nil, false, nil
	}

	entry := *c.entry
	fresh := c.now().Sub(entry.GeneratedAt) < c.ttl
	return &entry, fresh, nil
}

func (c *memoryCache) Set(_ context.Context, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = &entry
	return nil
}
