package job

import "errors"

// Job errors.
var (
	// ErrInvalidTask is returned when a task has an empty name or nil handler.
	ErrInvalidTask = errors.New("job: invalid task")

	// ErrInvalidSchedule is returned when a cron expression cannot be parsed.
	ErrInvalidSchedule = errors.New("job: invalid schedule")

	// ErrDuplicateTask is returned when a task name is registered twice.
	ErrDuplicateTask = errors.New("job: duplicate task")

	// ErrUnknownTask is returned when running a task that was never added.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrAlreadyStarted is returned when starting a running scheduler.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when stopping a scheduler that is not running.
	ErrNotStarted = errors.New("job: not started")
)
