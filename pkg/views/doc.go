// Package views renders meshkit data as HTML fragments.
//
// Components implement templ.Component, so they can be embedded in templ
// templates or written straight to an http.ResponseWriter:
//
//	views.Page("Upcoming events",
//		views.UpcomingEvents(evs, parser),
//	).Render(r.Context(), w)
//
// All user-supplied text is escaped. Descriptions are markdown and pass
// through [DescriptionHTML], which sanitizes the rendered HTML.
package views
