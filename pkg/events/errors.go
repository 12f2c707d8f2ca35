package events

import "errors"

// ErrInvalidEventDate is returned when an event's date cannot be parsed.
// The parser's own error is joined to it.
var ErrInvalidEventDate = errors.New("events: invalid event date")
