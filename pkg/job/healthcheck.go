package job

import (
	"context"
	"errors"
)

// ErrHealthcheckFailed is returned when the scheduler health check fails.
var ErrHealthcheckFailed = errors.New("job: healthcheck failed")

var (
	errSchedulerNil        = errors.New("scheduler is nil")
	errSchedulerNotStarted = errors.New("scheduler not started")
)

// Healthcheck reports whether s is running.
func Healthcheck(s *Scheduler) func(ctx context.Context) error {
	return func(context.Context) error {
		if s == nil {
			return errors.Join(ErrHealthcheckFailed, errSchedulerNil)
		}
		if !s.Running() {
			return errors.Join(ErrHealthcheckFailed, errSchedulerNotStarted)
		}
		return nil
	}
}
