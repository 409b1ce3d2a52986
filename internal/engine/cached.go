package engine

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Invalidator is implemented by engines that keep replies around and can
// drop them on request.
type Invalidator interface {
	Invalidate()
}

// DefaultCacheSize bounds the number of listing replies kept by Cached.
const DefaultCacheSize = 128

// Cached serves read-only commands from an LRU cache. Any command that can
// change engine state purges the cache before it runs. A reply that was in
// flight across a purge is returned but not cached.
type Cached struct {
	Engine
	cache *lru.Cache[string, Result]
	epoch atomic.Uint64
}

// NewCached wraps e with a cache of size entries.
func NewCached(e Engine, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, Result](size)
	if err != nil {
		return nil, err
	}
	return &Cached{Engine: e, cache: c}, nil
}

func (c *Cached) Execute(ctx context.Context, cmd Command) (Result, error) {
	if !cmd.ReadOnly() {
		c.Invalidate()
		return c.Engine.Execute(ctx, cmd)
	}
	key := cmd.String()
	if res, ok := c.cache.Get(key); ok {
		return res, nil
	}
	epoch := c.epoch.Load()
	res, err := c.Engine.Execute(ctx, cmd)
	if err != nil {
		return res, err
	}
	if c.epoch.Load() == epoch {
		c.cache.Add(key, res)
	}
	return res, nil
}

// The embedded Engine's config and project methods bypass Execute on this
// wrapper, so they purge explicitly.

func (c *Cached) SetConfig(ctx context.Context, key, value string) error {
	c.Invalidate()
	return c.Engine.SetConfig(ctx, key, value)
}

func (c *Cached) OpenProject(ctx context.Context, name string) error {
	c.Invalidate()
	return c.Engine.OpenProject(ctx, name)
}

// Invalidate drops every cached reply.
func (c *Cached) Invalidate() {
	c.epoch.Add(1)
	c.cache.Purge()
}

// Len reports the number of cached replies.
func (c *Cached) Len() int {
	return c.cache.Len()
}
