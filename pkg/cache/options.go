package cache

import (
	"time"

	"github.com/culturemesh/meshkit/pkg/clock"
)

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	clock           clock.Clock
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		clock:           clock.System(),
		defaultTTL:      5 * time.Minute,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL sets the TTL used when Set is called with zero.
// Default: 5 minutes.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often the janitor sweeps expired entries.
// Zero disables the janitor; expired entries are then dropped on read.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries caps the entry count; the least recently used entry is
// evicted at the cap. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// WithClock sets the clock used for expiry.
// Default: clock.System().
func WithClock(c clock.Clock) MemoryOption {
	return func(o *memoryOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// RedisOption configures the Redis cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix     string
	defaultTTL time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		prefix:     "meshkit",
		defaultTTL: 5 * time.Minute,
	}
}

// WithRedisDefaultTTL sets the TTL used when Set is called with zero.
// Default: 5 minutes.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.defaultTTL = d
	}
}

// WithPrefix namespaces keys as "{prefix}:{key}". An empty prefix stores
// keys as given.
// Default: "meshkit".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}
