package redis

import "errors"

var (
	ErrEmptyURL    = errors.New("redis: empty connection URL")
	ErrInvalidURL  = errors.New("redis: invalid connection URL")
	ErrUnreachable = errors.New("redis: server unreachable")
	ErrUnhealthy   = errors.New("redis: healthcheck failed")
)
