package meshclient

import (
	"context"
	"slices"
	"sync"

	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/mesh"
)

// Memory serves fixture data. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	networks map[mesh.ID][]mesh.Network
	events   map[mesh.ID][]mesh.Event
	users    map[mesh.ID]mesh.User
	calls    map[string]int
}

var _ events.Source = (*Memory)(nil)

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{
		networks: make(map[mesh.ID][]mesh.Network),
		events:   make(map[mesh.ID][]mesh.Event),
		users:    make(map[mesh.ID]mesh.User),
		calls:    make(map[string]int),
	}
}

// AddNetworks appends networks to a user's membership list.
func (m *Memory) AddNetworks(userID mesh.ID, networks ...mesh.Network) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.networks[userID] = append(m.networks[userID], networks...)
	return m
}

// AddEvents appends events to a network.
func (m *Memory) AddEvents(networkID mesh.ID, evs ...mesh.Event) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range evs {
		e.NetworkID = networkID
		m.events[networkID] = append(m.events[networkID], e)
	}
	return m
}

// AddUsers registers users for User lookups.
func (m *Memory) AddUsers(users ...mesh.User) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

// Calls returns how many times the named method was called.
func (m *Memory) Calls(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[method]
}

func (m *Memory) NetworksForUser(ctx context.Context, userID mesh.ID, limit int) ([]mesh.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["NetworksForUser"]++
	return head(m.networks[userID], limit), nil
}

func (m *Memory) EventsForNetwork(ctx context.Context, networkID mesh.ID, limit int) ([]mesh.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["EventsForNetwork"]++
	return head(m.events[networkID], limit), nil
}

// Ping always succeeds unless ctx is done.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// User returns ErrNotFound for unknown ids.
func (m *Memory) User(ctx context.Context, id mesh.ID) (mesh.User, error) {
	if err := ctx.Err(); err != nil {
		return mesh.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["User"]++
	u, ok := m.users[id]
	if !ok {
		return mesh.User{}, ErrNotFound
	}
	return u, nil
}

// Event returns ErrNotFound for unknown ids.
func (m *Memory) Event(ctx context.Context, id mesh.ID) (mesh.Event, error) {
	if err := ctx.Err(); err != nil {
		return mesh.Event{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Event"]++
	for _, evs := range m.events {
		if i := slices.IndexFunc(evs, func(e mesh.Event) bool { return e.ID == id }); i >= 0 {
			return evs[i], nil
		}
	}
	return mesh.Event{}, ErrNotFound
}

// head returns a copy of the first limit items.
func head[T any](s []T, limit int) []T {
	n := min(max(limit, 0), len(s))
	return nonNil(slices.Clone(s[:n:n]))
}
