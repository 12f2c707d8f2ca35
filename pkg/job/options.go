package job

import (
	"log/slog"
	"time"

	"github.com/culturemesh/meshkit/pkg/logger"
)

// DefaultTaskTimeout bounds a single run when WithTaskTimeout is not given.
const DefaultTaskTimeout = time.Minute

type config struct {
	logger   *slog.Logger
	location *time.Location
	timeout  time.Duration
}

func newConfig() *config {
	return &config{
		logger:   logger.NewNope(),
		location: time.UTC,
		timeout:  DefaultTaskTimeout,
	}
}

// Option configures a Scheduler.
type Option func(*config)

// WithLogger sets the logger used for run results and cron internals.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger.OrNope(l)
	}
}

// WithTaskTimeout bounds every run. Zero or negative disables the bound.
func WithTaskTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithLocation sets the zone schedules are evaluated in. Default: UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}
