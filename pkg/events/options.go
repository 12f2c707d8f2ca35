package events

import (
	"log/slog"

	"github.com/culturemesh/meshkit/pkg/clock"
	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/logger"
)

// Fetch caps.
const (
	// NetworkEventLimit caps the events fetched for a single network.
	NetworkEventLimit = 200
	// UserNetworkLimit caps the networks fetched for a user.
	UserNetworkLimit = 200
	// PerNetworkEventLimit caps the events fetched from each of a user's networks.
	PerNetworkEventLimit = 10
)

// Option configures an Aggregator.
type Option func(*options)

type options struct {
	clock            clock.Clock
	parser           dates.Parser
	logger           *slog.Logger
	concurrency      int
	networkEvents    int
	userNetworks     int
	perNetworkEvents int
}

func defaultOptions() *options {
	return &options{
		clock:            clock.System(),
		parser:           dates.New(),
		logger:           logger.NewNope(),
		concurrency:      1,
		networkEvents:    NetworkEventLimit,
		userNetworks:     UserNetworkLimit,
		perNetworkEvents: PerNetworkEventLimit,
	}
}

// WithClock sets the clock that defines "now".
// Default: clock.System().
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithParser sets the parser used for event dates.
// Default: dates.New().
func WithParser(p dates.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

// WithLogger sets the logger.
// Default: no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency sets how many networks UpcomingByUser fetches at once.
// Values below 1 are treated as 1.
// Default: 1 (sequential).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithLimits overrides the fetch caps. Non-positive values keep the default.
func WithLimits(networkEvents, userNetworks, perNetworkEvents int) Option {
	return func(o *options) {
		if networkEvents > 0 {
			o.networkEvents = networkEvents
		}
		if userNetworks > 0 {
			o.userNetworks = userNetworks
		}
		if perNetworkEvents > 0 {
			o.perNetworkEvents = perNetworkEvents
		}
	}
}
