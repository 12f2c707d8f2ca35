package sourcecache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/culturemesh/meshkit/pkg/cache"
	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/logger"
	"github.com/culturemesh/meshkit/pkg/mesh"
)

// DefaultTTL is how long fetched lists are kept when WithTTL is not given.
const DefaultTTL = 5 * time.Minute

// Option configures a Source.
type Option func(*Source)

// WithTTL sets how long fetched lists are kept.
func WithTTL(ttl time.Duration) Option {
	return func(s *Source) {
		s.ttl = ttl
	}
}

// WithLogger logs cache hits and misses at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger.OrNope(l)
	}
}

// Source is an events.Source backed by caches.
type Source struct {
	next     events.Source
	networks *cache.Loader[[]mesh.Network]
	events   *cache.Loader[[]mesh.Event]
	ttl      time.Duration
	logger   *slog.Logger
}

var _ events.Source = (*Source)(nil)

// New wraps next with the given caches.
func New(next events.Source, networks cache.Cache[[]mesh.Network], evs cache.Cache[[]mesh.Event], opts ...Option) *Source {
	s := &Source{
		next:   next,
		ttl:    DefaultTTL,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.networks = cache.NewLoader(networks, s.ttl)
	s.events = cache.NewLoader(evs, s.ttl)

	return s
}

// NetworksForUser implements events.Source.
func (s *Source) NetworksForUser(ctx context.Context, userID mesh.ID, limit int) ([]mesh.Network, error) {
	key := networksKey(userID, limit)

	networks, hit, err := s.networks.LoadHit(ctx, key, func(ctx context.Context) ([]mesh.Network, error) {
		return s.next.NetworksForUser(ctx, userID, limit)
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "user networks", slog.String("key", key), slog.Bool("cache_hit", hit))
	return networks, nil
}

// EventsForNetwork implements events.Source.
func (s *Source) EventsForNetwork(ctx context.Context, networkID mesh.ID, limit int) ([]mesh.Event, error) {
	key := eventsKey(networkID, limit)

	evs, hit, err := s.events.LoadHit(ctx, key, func(ctx context.Context) ([]mesh.Event, error) {
		return s.next.EventsForNetwork(ctx, networkID, limit)
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "network events", slog.String("key", key), slog.Bool("cache_hit", hit))
	return evs, nil
}

// ForgetNetworkEvents drops the cached events of a network fetched with limit.
func (s *Source) ForgetNetworkEvents(ctx context.Context, networkID mesh.ID, limit int) error {
	return s.events.Forget(ctx, eventsKey(networkID, limit))
}

// ForgetUserNetworks drops the cached networks of a user fetched with limit.
func (s *Source) ForgetUserNetworks(ctx context.Context, userID mesh.ID, limit int) error {
	return s.networks.Forget(ctx, networksKey(userID, limit))
}

// RefreshNetworkEvents drops and refetches the events of a network so the
// next reader gets a warm entry.
func (s *Source) RefreshNetworkEvents(ctx context.Context, networkID mesh.ID, limit int) error {
	if err := s.ForgetNetworkEvents(ctx, networkID, limit); err != nil {
		return err
	}
	_, err := s.EventsForNetwork(ctx, networkID, limit)
	return err
}

func networksKey(userID mesh.ID, limit int) string {
	return fmt.Sprintf("user:%d:networks:%d", userID, limit)
}

func eventsKey(networkID mesh.ID, limit int) string {
	return fmt.Sprintf("network:%d:events:%d", networkID, limit)
}
