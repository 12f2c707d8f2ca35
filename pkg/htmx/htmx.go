package htmx

import "net/http"

// Request headers sent by htmx.
const (
	HeaderRequest               = "HX-Request"
	HeaderHistoryRestoreRequest = "HX-History-Restore-Request"
	HeaderTarget                = "HX-Target"
	HeaderTrigger               = "HX-Trigger"
)

// IsRequest reports whether r was issued by htmx.
func IsRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// WantsFragment reports whether r should be answered with a partial page.
// History restores need the whole document.
func WantsFragment(r *http.Request) bool {
	return IsRequest(r) && r.Header.Get(HeaderHistoryRestoreRequest) != "true"
}

// Target returns the id of the element htmx will swap, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

// Trigger asks htmx to fire event on the client after the swap.
func Trigger(w http.ResponseWriter, event string) {
	w.Header().Set(HeaderTrigger, event)
}

// Vary marks the response as depending on the HX-Request header so caches
// keep full pages and fragments apart.
func Vary(w http.ResponseWriter) {
	w.Header().Add("Vary", HeaderRequest)
}
