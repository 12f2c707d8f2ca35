package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/culturemesh/meshkit/pkg/logger"
)

// DefaultTimeout bounds a whole probe when WithTimeout is not given.
const DefaultTimeout = 5 * time.Second

// Probe statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports a dependency's health.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to their functions.
type Checks map[string]CheckFunc

// Report is the outcome of a probe.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Result is the outcome of one check.
type Result struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type config struct {
	logger   *slog.Logger
	optional map[string]bool
	timeout  time.Duration
}

// Option configures a probe.
type Option func(*config)

// WithTimeout bounds the whole probe.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failing checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger.OrNope(l)
	}
}

// WithOptional marks checks whose failure degrades rather than fails the probe.
func WithOptional(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.optional[n] = true
		}
	}
}

func newConfig(opts ...Option) *config {
	c := &config{
		logger:   logger.NewNope(),
		optional: make(map[string]bool),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes every check in parallel. The error is non-nil only when a
// required check failed; it names each failing check.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Report, error) {
	return run(ctx, checks, newConfig(opts...))
}

func run(ctx context.Context, checks Checks, cfg *config) (*Report, error) {
	report := &Report{Status: StatusHealthy}
	if len(checks) == 0 {
		return report, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Result, len(checks))
		errs    = make(map[string]error)
	)

	for name, check := range checks {
		wg.Go(func() {
			start := time.Now()
			err := check(ctx)
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = errors.Join(ErrCheckTimeout, err)
			}

			res := Result{Status: StatusHealthy, DurationMS: time.Since(start).Milliseconds()}
			if err != nil {
				res.Status = StatusUnhealthy
				res.Error = err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.Bool("optional", cfg.optional[name]),
					slog.Any("error", err),
				)
			}

			mu.Lock()
			results[name] = res
			if err != nil {
				errs[name] = err
			}
			mu.Unlock()
		})
	}
	wg.Wait()

	report.Checks = results

	var required []error
	for _, name := range slices.Sorted(maps.Keys(errs)) {
		if cfg.optional[name] {
			report.Status = StatusDegraded
			continue
		}
		required = append(required, fmt.Errorf("%s: %w", name, errs[name]))
	}

	if len(required) > 0 {
		report.Status = StatusUnhealthy
		return report, errors.Join(append([]error{ErrCheckFailed}, required...)...)
	}
	return report, nil
}
