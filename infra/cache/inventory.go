package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sokoide/solid-orders/domain/repository"
)

const levelKey = "inventory:level"

// InventoryCache is a cache-aside wrapper around an InventorySource. Concurrent
// misses are collapsed into one read of the underlying source.
//
// A level written elsewhere (orderctl stock set, another process) becomes
// visible only after the TTL expires or Invalidate is called.
type InventoryCache struct {
	source repository.InventorySource
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	level     int
	expiresAt time.Time

	group singleflight.Group
}

func NewInventoryCache(source repository.InventorySource, ttl time.Duration) *InventoryCache {
	return &InventoryCache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *InventoryCache) Level(ctx context.Context) (int, error) {
	if level, ok := c.cached(); ok {
		return level, nil
	}

	// The shared read outlives any single caller; each caller only stops
	// waiting when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(levelKey, func() (interface{}, error) {
		if level, ok := c.cached(); ok {
			return level, nil
		}
		fresh, err := c.source.Level(fetchCtx)
		if err != nil {
			return 0, err
		}
		c.store(fresh)
		return fresh, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Invalidate drops the cached level so the next read goes to the source.
func (c *InventoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt = time.Time{}
}

func (c *InventoryCache) cached() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.now().Before(c.expiresAt) {
		return c.level, true
	}
	return 0, false
}

func (c *InventoryCache) store(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
	c.expiresAt = c.now().Add(c.ttl)
}
