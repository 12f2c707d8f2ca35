// Package server is the HTTP front end of meshweb.
//
// Routes:
//
//	GET /livez                      liveness probe
//	GET /readyz                     readiness probe
//	GET /metrics                    Prometheus metrics, when a registry is given
//	GET /networks/{id}/events       upcoming events of one network
//	GET /users/{id}/events          upcoming events across a user's networks
//
// Event routes take ?count=N (default 10) and answer HTML, or JSON when the
// client sends Accept: application/json or ?format=json. htmx requests get
// the bare event list for swapping into an existing page.
package server
