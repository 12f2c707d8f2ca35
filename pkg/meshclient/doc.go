// Package meshclient reads networks, events and users from the CultureMesh
// REST API.
//
// [Client] implements [events.Source]. Every request carries the API key in
// the key query parameter and asks for at most count items:
//
//	GET {base}/user/{id}/networks?count=N
//	GET {base}/network/{id}/events?count=N
//	GET {base}/user/{id}
//	GET {base}/event/{id}
//
// Non-2xx responses come back as an [*HTTPError] joined with [ErrNotFound],
// [ErrUnauthorized] or [ErrUpstream]. Server errors and transport failures
// are retried with a constant backoff; client errors are not.
//
// [Memory] is an in-process fixture with the same surface, used by tests and
// by the demo server when no API base URL is configured.
package meshclient
