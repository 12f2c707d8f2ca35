package cache

import "errors"

var (
	// ErrNotFound is returned when a key is missing or expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed is returned when writing to a closed cache.
	ErrClosed = errors.New("cache: closed")

	// ErrMarshal is returned when a value cannot be serialized.
	ErrMarshal = errors.New("cache: failed to marshal value")

	// ErrUnmarshal is returned when a stored value cannot be deserialized.
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")
)
