package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/culturemesh/meshkit/pkg/avatar"
	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/health"
	"github.com/culturemesh/meshkit/pkg/logger"
	"github.com/culturemesh/meshkit/pkg/mesh"
	"github.com/culturemesh/meshkit/pkg/timeago"
)

// Users looks up user profiles.
type Users interface {
	User(ctx context.Context, id mesh.ID) (mesh.User, error)
}

// Deps are the collaborators the handlers need. Aggregator and Networks
// are required; the rest fall back to defaults.
type Deps struct {
	Aggregator *events.Aggregator
	Networks   events.Source
	Users      Users
	Avatars    *avatar.Resolver
	Formatter  *timeago.Formatter
	Parser     dates.Parser
	Logger     *slog.Logger

	Checks         health.Checks
	OptionalChecks []string

	// Metrics, when set, receives the request metrics and is served on
	// /metrics.
	Metrics *prometheus.Registry
}

type handlers struct {
	agg       *events.Aggregator
	networks  events.Source
	users     Users
	avatars   *avatar.Resolver
	formatter *timeago.Formatter
	parser    dates.Parser
	logger    *slog.Logger
}

// New builds the routed handler.
func New(d Deps) http.Handler {
	l := logger.OrNope(d.Logger)

	h := &handlers{
		agg:       d.Aggregator,
		networks:  d.Networks,
		users:     d.Users,
		avatars:   d.Avatars,
		formatter: d.Formatter,
		parser:    d.Parser,
		logger:    l,
	}
	if h.formatter == nil {
		h.formatter = timeago.New()
	}
	if h.parser == nil {
		h.parser = dates.New()
	}
	if h.avatars == nil {
		h.avatars, _ = avatar.New()
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(accessLog(l))
	if d.Metrics != nil {
		r.Use(newMetrics(d.Metrics).instrument)
	}
	r.Use(recoverer(l))

	r.Get("/livez", health.Live())
	r.Get("/readyz", health.Ready(d.Checks, health.WithOptional(d.OptionalChecks...), health.WithLogger(l)))
	if d.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{}))
	}

	r.Get("/networks/{id}/events", h.handle(h.networkEvents))
	r.Get("/users/{id}/events", h.handle(h.userEvents))

	return r
}
