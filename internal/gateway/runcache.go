package gateway

import (
	"context"
	"strings"
	"sync"
)

// cacheEntry holds a memoized response or a completed failure.
type cacheEntry struct {
	value any
	err   error
}

// RunCache memoizes gateway responses for the lifetime of one pipeline
// invocation. A second concurrent request for the same key awaits the first
// instead of issuing a duplicate. Never persisted, never shared across runs.
type RunCache struct {
	mu       sync.Mutex
	values   map[string]cacheEntry
	inflight map[string]chan struct{}
}

// NewRunCache constructs an empty per-run cache.
func NewRunCache() *RunCache {
	return &RunCache{
		values:   make(map[string]cacheEntry),
		inflight: make(map[string]chan struct{}),
	}
}

// Key builds a normalized cache key from query terms.
func Key(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(norm, "|")
}

// do returns the cached response for key, awaits an in-flight computation,
// or runs fn and caches its outcome. Failures are cached too so a failing
// query costs one outbound call per run.
func (c *RunCache) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	for {
		c.mu.Lock()
		if entry, ok := c.values[key]; ok {
			c.mu.Unlock()
			return entry.value, entry.err
		}
		if done, ok := c.inflight[key]; ok {
			c.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		done := make(chan struct{})
		c.inflight[key] = done
		c.mu.Unlock()

		value, err := fn(ctx)

		c.mu.Lock()
		c.values[key] = cacheEntry{value: value, err: err}
		delete(c.inflight, key)
		close(done)
		c.mu.Unlock()

		return value, err
	}
}

// Do is the typed wrapper around the cache's memoization.
func Do[T any](c *RunCache, ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	value, err := c.do(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if value == nil {
		var zero T
		return zero, err
	}
	return value.(T), err
}
