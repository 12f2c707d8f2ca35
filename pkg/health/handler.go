package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Live always answers 200; it proves the process serves HTTP.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, &Report{Status: StatusHealthy})
			return
		}
		writeText(w, http.StatusOK, "OK")
	}
}

// Ready runs checks on every request. Unhealthy answers 503; healthy and
// degraded answer 200.
func Ready(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		report, _ := run(r.Context(), checks, cfg)

		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}

		if wantsJSON(r) {
			writeJSON(w, code, report)
			return
		}

		switch report.Status {
		case StatusUnhealthy:
			writeText(w, code, "Service Unavailable")
		case StatusDegraded:
			writeText(w, code, "Degraded")
		default:
			writeText(w, code, "OK")
		}
	}
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
