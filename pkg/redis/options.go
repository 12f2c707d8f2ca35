package redis

import (
	"log/slog"
	"time"

	"github.com/culturemesh/meshkit/pkg/logger"
)

// Option configures Open.
type Option func(*options)

type options struct {
	poolSize    int
	minIdle     int
	connMaxIdle time.Duration
	dialTimeout time.Duration
	ioTimeout   time.Duration
	attempts    int
	backoff     time.Duration
	logger      *slog.Logger
}

func defaultOptions() *options {
	return &options{
		poolSize:    10,
		minIdle:     2,
		connMaxIdle: 5 * time.Minute,
		dialTimeout: 3 * time.Second,
		ioTimeout:   time.Second,
		attempts:    3,
		backoff:     2 * time.Second,
		logger:      logger.NewNope(),
	}
}

// WithPool sets the maximum pool size and the number of idle connections kept
// warm. Defaults: 10 and 2.
func WithPool(size, minIdle int) Option {
	return func(o *options) {
		o.poolSize = size
		o.minIdle = minIdle
	}
}

// WithConnMaxIdle closes pooled connections idle for longer than d.
func WithConnMaxIdle(d time.Duration) Option {
	return func(o *options) {
		o.connMaxIdle = d
	}
}

// WithTimeouts sets the dial timeout and the read/write timeout.
// Cache lookups sit on the request path, so the I/O default is one second.
func WithTimeouts(dial, io time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = dial
		o.ioTimeout = io
	}
}

// WithRetry sets how many times Open pings before giving up and the base
// backoff between attempts.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(o *options) {
		o.attempts = attempts
		o.backoff = backoff
	}
}

// WithLogger reports failed connection attempts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger.OrNope(l)
	}
}
