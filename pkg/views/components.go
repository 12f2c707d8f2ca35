package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/display"
	"github.com/culturemesh/meshkit/pkg/mesh"
	"github.com/culturemesh/meshkit/pkg/timeago"
)

// EmptyEvents is shown when there is nothing upcoming.
const EmptyEvents = "No upcoming events."

// Page wraps body in a complete HTML document.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		hw.text(title)
		hw.raw(`</title></head><body>`)
		hw.component(ctx, body)
		hw.raw(`</body></html>`)
		return hw.err
	})
}

// NetworkHeading renders the network title and when the user joined it.
// p reads the join date; f phrases how long ago that was. Nil values use the
// package defaults.
func NetworkHeading(n mesh.Network, p dates.Parser, f *timeago.Formatter) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<header class="network"><h1>`)
		hw.text(display.NetworkTitle(n))
		hw.raw(`</h1>`)

		if n.JoinDate != "" {
			var ago string
			if f != nil {
				ago = f.Format(timeago.DateString(n.JoinDate))
			} else {
				ago = timeago.Format(timeago.DateString(n.JoinDate))
			}
			hw.raw(`<p class="joined">Joined `)
			hw.text(display.ShortJoinDate(n, p))
			if ago != "" {
				hw.raw(` <span class="ago">(`)
				hw.text(ago)
				hw.raw(`)</span>`)
			}
			hw.raw(`</p>`)
		}

		hw.raw(`</header>`)
		return hw.err
	})
}

// UpcomingEvents renders events in the given order as a list.
func UpcomingEvents(evs []mesh.Event, p dates.Parser) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		if len(evs) == 0 {
			hw.raw(`<p class="events-empty">`)
			hw.text(EmptyEvents)
			hw.raw(`</p>`)
			return hw.err
		}

		hw.raw(`<ul class="events">`)
		for _, e := range evs {
			hw.raw(`<li class="event" id="event-`, e.ID.String(), `"><h3>`)
			hw.text(e.Title)
			hw.raw(`</h3><p class="when">`)
			hw.text(display.EventStart(e, p))
			hw.raw(`</p>`)
			if where := display.EventLocation(e); where != "" {
				hw.raw(`<p class="where">`)
				hw.text(where)
				hw.raw(`</p>`)
			}
			if e.Description != "" {
				hw.raw(`<div class="description">`, DescriptionHTML(e.Description), `</div>`)
			}
			hw.raw(`</li>`)
		}
		hw.raw(`</ul>`)
		return hw.err
	})
}

// UserBadge renders a user's profile image and username. Image URLs with
// unsafe schemes are replaced by templ's placeholder.
func UserBadge(u mesh.User, imageURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<span class="user"><img class="avatar" src="`)
		hw.text(string(templ.URL(imageURL)))
		hw.raw(`" alt=""> `)
		hw.text(u.Username)
		hw.raw(`</span>`)
		return hw.err
	})
}

// htmlWriter stops writing after the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Stack renders components one after another.
func Stack(cs ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		for _, c := range cs {
			hw.component(ctx, c)
		}
		return hw.err
	})
}

// Message renders an escaped paragraph.
func Message(class, text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<p class="`)
		hw.text(class)
		hw.raw(`">`)
		hw.text(text)
		hw.raw(`</p>`)
		return hw.err
	})
}
