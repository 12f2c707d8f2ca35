package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Stats counts what a Memory cache did since it was created.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64 // dropped to stay under the entry limit
	Expirations uint64 // dropped because their TTL passed
	Entries     int
}

type entry[V any] struct {
	expiresAt time.Time // zero: never expires
	value     V
	key       string
}

func (e *entry[V]) live(now time.Time) bool {
	return e.expiresAt.IsZero() || !now.After(e.expiresAt)
}

// Memory is an in-process cache with TTL expiry read from the configured
// clock, and least-recently-used eviction once WithMaxEntries is reached.
type Memory[V any] struct {
	items map[string]*list.Element
	lru   *list.List // front: most recently used
	opts  *memoryOptions
	stats Stats
	done  chan struct{}
	mu    sync.Mutex
	// closed rejects writes; reads keep working until the value is dropped.
	closed bool
}

// NewMemory creates an in-memory cache. Unless the cleanup interval is zero,
// a janitor goroutine drops expired entries until Close is called.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items: make(map[string]*list.Element),
		lru:   list.New(),
		opts:  o,
		done:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor(o.cleanupInterval)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if ok && !m.expire(elem, m.opts.clock.Now()) {
		m.stats.Hits++
		m.lru.MoveToFront(elem)
		return elem.Value.(*entry[V]).value, nil
	}

	m.stats.Misses++
	var zero V
	return zero, ErrNotFound
}

// Set stores value for ttl. Zero ttl uses the default TTL; a negative ttl
// never expires.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	e := &entry[V]{key: key, value: value, expiresAt: m.deadline(ttl)}

	if elem, ok := m.items[key]; ok {
		elem.Value = e
		m.lru.MoveToFront(elem)
		return nil
	}

	for m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		m.unlink(m.lru.Back())
		m.stats.Evictions++
	}
	m.items[key] = m.lru.PushFront(e)
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[key]; ok {
		m.unlink(elem)
	}
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	clear(m.items)
	m.lru.Init()
	return nil
}

// Len returns the number of stored entries, expired ones included until swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Stats returns a snapshot of the counters.
func (m *Memory[V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.Entries = len(m.items)
	return s
}

// Close stops the janitor. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory[V]) deadline(ttl time.Duration) time.Time {
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	if ttl < 0 {
		return time.Time{}
	}
	return m.opts.clock.Now().Add(ttl)
}

func (m *Memory[V]) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.clock.Now()
	for _, elem := range m.items {
		m.expire(elem, now)
	}
}

// expire drops elem if it is past its deadline and reports whether it did.
// Caller holds m.mu.
func (m *Memory[V]) expire(elem *list.Element, now time.Time) bool {
	if elem.Value.(*entry[V]).live(now) {
		return false
	}
	m.unlink(elem)
	m.stats.Expirations++
	return true
}

// unlink removes elem from both indexes. Caller holds m.mu.
func (m *Memory[V]) unlink(elem *list.Element) {
	m.lru.Remove(elem)
	delete(m.items, elem.Value.(*entry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
