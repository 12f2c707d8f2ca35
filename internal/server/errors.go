package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/meshclient"
)

// httpError carries the status and user-facing message of a failed request.
type httpError struct {
	err     error
	message string
	code    int
}

func (e *httpError) Error() string { return e.message }
func (e *httpError) Unwrap() error { return e.err }

func badRequest(message string, err error) error {
	return &httpError{code: http.StatusBadRequest, message: message, err: err}
}

// classify maps a handler error to a status code and message.
func classify(err error) *httpError {
	var herr *httpError
	switch {
	case errors.As(err, &herr):
		return herr
	case errors.Is(err, meshclient.ErrNotFound):
		return &httpError{code: http.StatusNotFound, message: "Not found.", err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &httpError{code: http.StatusGatewayTimeout, message: "The event service took too long to answer.", err: err}
	case errors.Is(err, events.ErrInvalidEventDate),
		errors.Is(err, meshclient.ErrUpstream),
		errors.Is(err, meshclient.ErrDecode),
		errors.Is(err, meshclient.ErrUnauthorized):
		return &httpError{code: http.StatusBadGateway, message: "The event service is unavailable.", err: err}
	default:
		return &httpError{code: http.StatusInternalServerError, message: "Something went wrong.", err: err}
	}
}
