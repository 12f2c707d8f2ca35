// Package sourcecache memoizes an [events.Source].
//
// Network lists and event lists are cached separately, keyed by id and
// limit, so the same upstream call made with a different limit is a distinct
// entry. Concurrent misses for one key share a single upstream call. Errors
// from the wrapped source are returned unchanged and never stored.
//
//	src := sourcecache.New(client,
//		cache.NewMemory[[]mesh.Network](),
//		cache.NewMemory[[]mesh.Event](),
//		sourcecache.WithTTL(2*time.Minute),
//	)
//	agg := events.New(src)
package sourcecache
