// Package cache stores fetched CultureMesh snapshots for a bounded time.
//
// Two backends share the [Cache] interface: [Memory], an in-process LRU with
// TTL expiry driven by an injected clock, and [Redis], which serializes values
// (JSON by default) under a key prefix.
//
//	networks := cache.NewMemory[[]mesh.Network](
//	    cache.WithDefaultTTL(5*time.Minute),
//	    cache.WithMaxEntries(10_000),
//	)
//	defer networks.Close()
//
// TTL semantics for Set:
//   - positive: the entry expires after the duration
//   - zero: the cache's default TTL applies
//   - negative: the entry never expires
//
// # Loading
//
// A [Loader] wraps a cache with read-through loading. Concurrent misses for
// the same key share one call to the load function, and load errors are never
// cached:
//
//	l := cache.NewLoader(networks, time.Minute)
//	v, err := l.Load(ctx, "user:42:networks:200", func(ctx context.Context) ([]mesh.Network, error) {
//	    return client.NetworksForUser(ctx, 42, 200)
//	})
package cache
