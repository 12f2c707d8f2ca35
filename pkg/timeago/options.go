package timeago

import (
	"log/slog"
	"time"

	"github.com/culturemesh/meshkit/pkg/clock"
	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/logger"
)

// Option configures a Formatter.
type Option func(*options)

type options struct {
	clock    clock.Clock
	parser   dates.Parser
	epochLoc *time.Location
	logger   *slog.Logger
}

func defaultOptions() *options {
	return &options{
		clock:    clock.System(),
		parser:   dates.New(),
		epochLoc: time.Local,
		logger:   logger.NewNope(),
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

// WithParser sets the parser used for DateString inputs.
// Default: dates.New().
func WithParser(p dates.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

// WithEpochLocation sets the zone whose wall clock EpochSeconds inputs are
// read in before being compared against UTC "now".
// Default: time.Local.
func WithEpochLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.epochLoc = loc
		}
	}
}

// WithLogger sets the logger used for unparsable date strings.
// Default: no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
