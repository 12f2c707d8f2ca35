package health

import "errors"

var (
	// ErrCheckFailed is returned by Run when a required check fails.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is reported for checks that outlive the timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
