// Package nifcache shares loaded record graphs between callers.
//
// A loaded *nif.File is immutable, so one instance can serve every caller
// asking for the same name. Concurrent requests for a name that is not cached
// yet wait for a single load.
package nifcache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"nifgraph/internal/nif"
)

// LoadFunc loads the graph for a name, typically with nif.LoadFile.
type LoadFunc func(ctx context.Context, name string) (*nif.File, error)

// Cache is a bounded LRU of loaded graphs. Failed loads are not cached.
type Cache struct {
	lru   *lru.Cache[string, *nif.File]
	group singleflight.Group
	load  LoadFunc
}

// New returns a cache keeping at most size graphs.
func New(size int, load LoadFunc) (*Cache, error) {
	l, err := lru.New[string, *nif.File](size)
	if err != nil {
		return nil, fmt.Errorf("nifcache: %w", err)
	}
	return &Cache{lru: l, load: load}, nil
}

// Get returns the graph for name, loading it on a miss.
func (c *Cache) Get(ctx context.Context, name string) (*nif.File, error) {
	if f, ok := c.lru.Get(name); ok {
		return f, nil
	}
	// the load is shared, so one caller giving up must not cancel it
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (any, error) {
		// a load that finished while we waited for the group
		if f, ok := c.lru.Get(name); ok {
			return f, nil
		}
		f, err := c.load(loadCtx, name)
		if err != nil {
			return nil, err
		}
		c.lru.Add(name, f)
		return f, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*nif.File), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns a cached graph without loading or touching its recency.
func (c *Cache) Peek(name string) (*nif.File, bool) {
	return c.lru.Peek(name)
}

// Remove drops name from the cache.
func (c *Cache) Remove(name string) {
	c.lru.Remove(name)
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached graphs.
func (c *Cache) Len() int {
	return c.lru.Len()
}
