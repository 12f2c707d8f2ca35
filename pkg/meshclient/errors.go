package meshclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidConfig = errors.New("meshclient: invalid configuration")
	ErrNotFound      = errors.New("meshclient: not found")
	ErrUnauthorized  = errors.New("meshclient: unauthorized")
	ErrUpstream      = errors.New("meshclient: upstream error")
	ErrDecode        = errors.New("meshclient: invalid response body")
	ErrFixtures      = errors.New("meshclient: invalid fixtures")
)

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("meshclient: status %d", e.StatusCode)
	}
	return fmt.Sprintf("meshclient: status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed if retried.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

func statusError(code int, body string) error {
	herr := &HTTPError{StatusCode: code, Body: body}

	switch code {
	case http.StatusNotFound:
		return errors.Join(ErrNotFound, herr)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Join(ErrUnauthorized, herr)
	default:
		return errors.Join(ErrUpstream, herr)
	}
}
