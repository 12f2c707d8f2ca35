package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Func is the body of a scheduled task.
type Func func(ctx context.Context) error

// Scheduler runs registered tasks on their cron schedules.
type Scheduler struct {
	cfg    *config
	cron   *cron.Cron
	parser cron.Parser

	mu      sync.Mutex
	tasks   map[string]Func
	base    context.Context
	cancel  context.CancelFunc
	started bool
}

// New creates a stopped Scheduler.
func New(opts ...Option) *Scheduler {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	l := cronLogger{l: cfg.logger}
	return &Scheduler{
		cfg: cfg,
		cron: cron.New(
			cron.WithLocation(cfg.location),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		tasks:  make(map[string]Func),
		base:   context.Background(),
	}
}

// Add registers fn under name to run on the given cron schedule.
// Tasks may be added before or after Start.
func (s *Scheduler) Add(name, schedule string, fn Func) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return ErrInvalidTask
	}

	sched, err := s.parser.Parse(strings.TrimSpace(schedule))
	if err != nil {
		return errors.Join(ErrInvalidSchedule, fmt.Errorf("task %q: %w", name, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTask, name)
	}
	s.tasks[name] = fn

	s.cron.Schedule(sched, cron.FuncJob(func() {
		s.execute(s.context(), name, fn)
	}))

	s.cfg.logger.Debug("task scheduled", slog.String("task", name), slog.String("schedule", schedule))
	return nil
}

// Run executes the named task once, now, in the caller's goroutine.
func (s *Scheduler) Run(ctx context.Context, name string) error {
	s.mu.Lock()
	fn, ok := s.tasks[name]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}
	return s.execute(ctx, name, fn)
}

// Tasks returns the registered task names in sorted order.
func (s *Scheduler) Tasks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.tasks))
}

// Start begins running tasks on their schedules. Scheduled runs derive
// their context from ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	s.base, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.cron.Start()
	s.started = true

	s.cfg.logger.InfoContext(ctx, "scheduler started", slog.Int("tasks", len(s.tasks)))
	return nil
}

// Stop stops scheduling new runs and waits for in-flight runs to finish.
// If ctx ends first, in-flight runs are cancelled and ctx.Err is returned.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	defer cancel()

	select {
	case <-s.cron.Stop().Done():
		s.cfg.logger.InfoContext(ctx, "scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running reports whether the scheduler has been started and not stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base
}

func (s *Scheduler) execute(ctx context.Context, name string, fn Func) error {
	if s.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	attrs := []any{slog.String("task", name), slog.Duration("duration", time.Since(start))}

	if err != nil {
		s.cfg.logger.ErrorContext(ctx, "task failed", append(attrs, slog.Any("error", err))...)
		return err
	}

	s.cfg.logger.DebugContext(ctx, "task finished", attrs...)
	return nil
}

// cronLogger routes cron's own logging into slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}
