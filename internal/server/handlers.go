package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/culturemesh/meshkit/pkg/display"
	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/htmx"
	"github.com/culturemesh/meshkit/pkg/logger"
	"github.com/culturemesh/meshkit/pkg/mesh"
	"github.com/culturemesh/meshkit/pkg/views"
)

// Count bounds for the event routes.
const (
	DefaultCount = 10
	MaxCount     = events.NetworkEventLimit
)

// EventsLoadedTrigger is fired on the client after an htmx swap of an
// event list.
const EventsLoadedTrigger = "events-loaded"

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

type eventJSON struct {
	mesh.Event
	Starts string `json:"starts"`
	Where  string `json:"where,omitempty"`
}

type eventsResponse struct {
	NetworkID *mesh.ID    `json:"network_id,omitempty"`
	UserID    *mesh.ID    `json:"user_id,omitempty"`
	Count     int         `json:"count"`
	Events    []eventJSON `json:"events"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *handlers) networkEvents(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	count, err := parseCount(r)
	if err != nil {
		return err
	}

	evs, err := h.agg.UpcomingByNetwork(r.Context(), id, count)
	if err != nil {
		return err
	}

	if wantsJSON(r) {
		return writeJSON(w, http.StatusOK, h.eventsResponse(evs, &id, nil))
	}

	list := views.UpcomingEvents(evs, h.parser)
	return h.page(w, r, "Upcoming events", list, views.Stack(
		views.Message("title", "Upcoming events in network "+id.String()),
		list,
	))
}

func (h *handlers) userEvents(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	count, err := parseCount(r)
	if err != nil {
		return err
	}

	ctx := logger.WithUserID(r.Context(), id.String())

	evs, err := h.agg.UpcomingByUser(ctx, id, count)
	if err != nil {
		return err
	}

	if wantsJSON(r) {
		return writeJSON(w, http.StatusOK, h.eventsResponse(evs, nil, &id))
	}

	list := views.UpcomingEvents(evs, h.parser)
	if htmx.WantsFragment(r) {
		return h.page(w, r, "", list, nil)
	}

	title := "Upcoming events"
	var parts []templ.Component

	if h.users != nil {
		u, err := h.users.User(ctx, id)
		if err != nil {
			return err
		}
		title += " for " + u.Username
		parts = append(parts, views.UserBadge(u, h.avatars.URLOrBlank(ctx, u)))
	}

	networks, err := h.networks.NetworksForUser(ctx, id, events.UserNetworkLimit)
	if err != nil {
		return err
	}
	for _, n := range networks {
		parts = append(parts, views.NetworkHeading(n, h.parser, h.formatter))
	}

	parts = append(parts, list)
	return h.page(w, r, title, list, views.Stack(parts...))
}

func (h *handlers) eventsResponse(evs []mesh.Event, networkID, userID *mesh.ID) eventsResponse {
	out := make([]eventJSON, len(evs))
	for i, e := range evs {
		out[i] = eventJSON{
			Event:  e,
			Starts: display.EventStart(e, h.parser),
			Where:  display.EventLocation(e),
		}
	}
	return eventsResponse{NetworkID: networkID, UserID: userID, Count: len(out), Events: out}
}

// handle adapts an error-returning handler and renders its failure.
func (h *handlers) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
			h.logger.DebugContext(r.Context(), "client went away", slog.Any("error", err))
			return
		}

		herr := classify(err)
		level := slog.LevelWarn
		if herr.code >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "request failed",
			slog.Int("status", herr.code),
			slog.Any("error", err),
		)

		h.writeError(w, r, herr)
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, herr *httpError) {
	if wantsJSON(r) {
		_ = writeJSON(w, herr.code, errorResponse{
			Error:     herr.message,
			RequestID: w.Header().Get(RequestIDHeader),
		})
		return
	}

	page := views.Page(http.StatusText(herr.code), views.Message("error", herr.message))
	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		http.Error(w, herr.message, herr.code)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(herr.code)
	_, _ = w.Write(buf.Bytes())
}

// page renders fragment alone for htmx swaps and body inside a full page
// otherwise.
func (h *handlers) page(w http.ResponseWriter, r *http.Request, title string, fragment, body templ.Component) error {
	htmx.Vary(w)
	if htmx.WantsFragment(r) {
		htmx.Trigger(w, EventsLoadedTrigger)
		return h.render(w, r, fragment)
	}
	return h.render(w, r, views.Page(title, body))
}

// render buffers c so a render failure can still become an error page.
func (h *handlers) render(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func pathID(r *http.Request) (mesh.ID, error) {
	id, err := mesh.ParseID(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, badRequest("The id must be a positive integer.", err)
	}
	return id, nil
}

func parseCount(r *http.Request) (int, error) {
	s := r.URL.Query().Get("count")
	if s == "" {
		return DefaultCount, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, badRequest("count must be a non-negative integer.", err)
	}
	return min(n, MaxCount), nil
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(data, '\n'))
	return nil
}
