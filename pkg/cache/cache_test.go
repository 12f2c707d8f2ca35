package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culturemesh/meshkit/pkg/cache"
	"github.com/culturemesh/meshkit/pkg/clock"
	"github.com/culturemesh/meshkit/pkg/mesh"
)

var start = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newMemory[V any](c clock.Clock, opts ...cache.MemoryOption) *cache.Memory[V] {
	opts = append([]cache.MemoryOption{cache.WithClock(c), cache.WithCleanupInterval(0)}, opts...)
	return cache.NewMemory[V](opts...)
}

// --- Memory ---

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](clock.Fixed(start))
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stores slices of events", func(t *testing.T) {
		t.Parallel()

		c := newMemory[[]mesh.Event](clock.Fixed(start))
		defer c.Close()

		ctx := context.Background()
		evs := []mesh.Event{{ID: 1, Title: "Potluck"}, {ID: 2, Title: "Film night"}}
		require.NoError(t, c.Set(ctx, "network:1:events:10", evs, time.Minute))

		got, err := c.Get(ctx, "network:1:events:10")
		require.NoError(t, err)
		require.Equal(t, evs, got)
	})

	t.Run("overwrites existing key", func(t *testing.T) {
		t.Parallel()

		c := newMemory[int](clock.Fixed(start))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "k", 2, time.Minute))

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, 2, got)
		require.Equal(t, 1, c.Len())
	})
}

func TestMemory_TTL(t *testing.T) {
	t.Parallel()

	t.Run("entry expires after ttl", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewManual(start)
		c := newMemory[string](clk)
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		clk.Advance(time.Minute)
		got, err := c.Get(ctx, "k")
		require.NoError(t, err, "entry is valid up to and including its expiry instant")
		require.Equal(t, "v", got)

		clk.Advance(time.Second)
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("zero ttl uses default", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewManual(start)
		c := newMemory[string](clk, cache.WithDefaultTTL(10*time.Second))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", 0))

		clk.Advance(11 * time.Second)
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewManual(start)
		c := newMemory[string](clk, cache.WithDefaultTTL(time.Second))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "forever", -1))

		clk.Advance(24 * 365 * time.Hour)
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "forever", got)
	})

	t.Run("janitor sweeps expired entries", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewManual(start)
		c := cache.NewMemory[string](cache.WithClock(clk), cache.WithCleanupInterval(5*time.Millisecond))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", "1", time.Second))
		require.NoError(t, c.Set(ctx, "b", "2", -1))

		clk.Advance(2 * time.Second)

		require.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 5*time.Millisecond)
	})
}

func TestMemory_MaxEntries(t *testing.T) {
	t.Parallel()

	c := newMemory[string](clock.Fixed(start), cache.WithMaxEntries(2))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

	// Touch "a" so "b" becomes least recently used.
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

	_, err = c.Get(ctx, "b")
	require.ErrorIs(t, err, cache.ErrNotFound)

	_, err = c.Get(ctx, "a")
	require.NoError(t, err)
	_, err = c.Get(ctx, "c")
	require.NoError(t, err)
}

func TestMemory_DeleteClearClose(t *testing.T) {
	t.Parallel()

	c := newMemory[string](clock.Fixed(start))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))
	_, err := c.Get(ctx, "a")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Clear(ctx))
	require.Zero(t, c.Len())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.ErrorIs(t, c.Set(ctx, "a", "1", time.Minute), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "a"), cache.ErrClosed)
	require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)
}

func TestMemory_Stats(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(start)
	c := newMemory[string](clk, cache.WithMaxEntries(2))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", "1", time.Second))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

	_, err := c.Get(ctx, "a")
	require.NoError(t, err)
	_, err = c.Get(ctx, "missing")
	require.ErrorIs(t, err, cache.ErrNotFound)

	// "b" is least recently used and makes room for "c".
	require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

	clk.Advance(2 * time.Second)
	_, err = c.Get(ctx, "a")
	require.ErrorIs(t, err, cache.ErrNotFound)

	assert.Equal(t, cache.Stats{
		Hits:        1,
		Misses:      2,
		Evictions:   1,
		Expirations: 1,
		Entries:     1,
	}, c.Stats())
}

// --- Loader ---

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads once then serves from cache", func(t *testing.T) {
		t.Parallel()

		c := newMemory[[]mesh.Network](clock.Fixed(start))
		defer c.Close()
		l := cache.NewLoader[[]mesh.Network](c, time.Minute)

		var calls atomic.Int32
		load := func(context.Context) ([]mesh.Network, error) {
			calls.Add(1)
			return []mesh.Network{{ID: 7}}, nil
		}

		ctx := context.Background()
		got, hit, err := l.LoadHit(ctx, "user:1", load)
		require.NoError(t, err)
		require.False(t, hit)
		require.Equal(t, []mesh.Network{{ID: 7}}, got)

		got, hit, err = l.LoadHit(ctx, "user:1", load)
		require.NoError(t, err)
		require.True(t, hit)
		require.Equal(t, []mesh.Network{{ID: 7}}, got)
		require.EqualValues(t, 1, calls.Load())
	})

	t.Run("errors are returned unchanged and not cached", func(t *testing.T) {
		t.Parallel()

		c := newMemory[int](clock.Fixed(start))
		defer c.Close()
		l := cache.NewLoader[int](c, time.Minute)

		loadErr := errors.New("upstream down")
		_, err := l.Load(context.Background(), "k", func(context.Context) (int, error) {
			return 0, loadErr
		})
		require.Same(t, loadErr, err)

		_, err = c.Get(context.Background(), "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()

		c := newMemory[string](clock.Fixed(start))
		defer c.Close()
		l := cache.NewLoader[string](c, time.Minute)

		var calls atomic.Int32
		release := make(chan struct{})
		load := func(context.Context) (string, error) {
			calls.Add(1)
			<-release
			return "v", nil
		}

		var wg sync.WaitGroup
		results := make([]string, 10)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := l.Load(context.Background(), "shared", load)
				assert.NoError(t, err)
				results[i] = v
			}()
		}

		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		require.LessOrEqual(t, calls.Load(), int32(2))
		for _, v := range results {
			require.Equal(t, "v", v)
		}
	})

	t.Run("forget drops the entry", func(t *testing.T) {
		t.Parallel()

		c := newMemory[int](clock.Fixed(start))
		defer c.Close()
		l := cache.NewLoader[int](c, time.Minute)

		ctx := context.Background()
		n := 0
		load := func(context.Context) (int, error) {
			n++
			return n, nil
		}

		v, err := l.Load(ctx, "k", load)
		require.NoError(t, err)
		require.Equal(t, 1, v)

		require.NoError(t, l.Forget(ctx, "k"))

		v, err = l.Load(ctx, "k", load)
		require.NoError(t, err)
		require.Equal(t, 2, v)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	m := cache.JSON[[]mesh.Event]{}

	data, err := m.Marshal([]mesh.Event{{ID: 3, Title: "Picnic", Date: "2030-01-01"}})
	require.NoError(t, err)

	got, err := m.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, []mesh.Event{{ID: 3, Title: "Picnic", Date: "2030-01-01"}}, got)

	_, err = m.Unmarshal([]byte("{not json"))
	require.ErrorIs(t, err, cache.ErrUnmarshal)

	_, err = cache.JSON[chan int]{}.Marshal(make(chan int))
	require.ErrorIs(t, err, cache.ErrMarshal)
}
