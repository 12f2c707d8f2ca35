package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader adds read-through loading on top of a Cache.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group
	ttl   time.Duration
}

// NewLoader creates a Loader storing loaded values with ttl
// (zero uses the cache's default).
func NewLoader[V any](c Cache[V], ttl time.Duration) *Loader[V] {
	return &Loader[V]{cache: c, ttl: ttl}
}

// Load returns the cached value for key, or calls fn on a miss.
// Concurrent misses for the same key wait for a single fn call.
// Errors from fn are returned as-is and nothing is stored.
// A failing cache read is treated as a miss; a failing write is ignored.
func (l *Loader[V]) Load(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	v, _, err := l.LoadHit(ctx, key, fn)
	return v, err
}

// LoadHit is Load that also reports whether the value came from the cache.
func (l *Loader[V]) LoadHit(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, bool, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, true, nil
	}

	res, err, _ := l.group.Do(key, func() (any, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// Best effort: the caller gets the fresh value either way.
		_ = l.cache.Set(ctx, key, val, l.ttl)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}

	v, _ := res.(V)
	return v, false, nil
}

// Forget drops key from the cache.
func (l *Loader[V]) Forget(ctx context.Context, key string) error {
	return l.cache.Delete(ctx, key)
}
