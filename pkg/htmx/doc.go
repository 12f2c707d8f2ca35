// Package htmx reads htmx request headers so a handler can answer an htmx
// swap with a fragment instead of a full page.
//
//	if htmx.WantsFragment(r) {
//	    htmx.Vary(w)
//	    return render(w, r, list)
//	}
//	return render(w, r, views.Page(title, list))
package htmx
