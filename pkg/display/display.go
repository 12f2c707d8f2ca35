// Package display formats CultureMesh entities for templates: network titles,
// event locations, and membership join dates.
package display

import (
	"fmt"

	"github.com/culturemesh/meshkit/pkg/dates"
	"github.com/culturemesh/meshkit/pkg/mesh"
)

const (
	// UnknownTitle is the title of a network with an unrecognized class.
	UnknownTitle = "Unknown"

	// UnknownJoinDate is shown when a join date is missing or unparsable.
	UnknownJoinDate = "unknown"

	// ShortDateLayout renders dates as "Mon day, Year".
	ShortDateLayout = "Jan 2, 2006"

	// EventStartLayout renders event start times.
	EventStartLayout = "Mon, Jan 2, 2006 3:04 PM MST"

	// UnknownStart is shown for events whose date cannot be read.
	UnknownStart = "Date to be announced"
)

// NetworkTitle returns the human-readable title of a network:
//
//	language network:              "Spanish speakers in Boston, Massachusetts"
//	city/region/country network:   "From Lima, Peru in Boston, Massachusetts"
func NetworkTitle(n mesh.Network) string {
	switch {
	case n.Class == mesh.ClassLanguage:
		return fmt.Sprintf("%s speakers in %s", n.Language, n.Current)
	case n.Class.IsLocation():
		return fmt.Sprintf("From %s in %s", n.Origin, n.Current)
	default:
		return UnknownTitle
	}
}

// EventLocation returns where an event takes place ("New York City, New York"),
// not its street address.
func EventLocation(e mesh.Event) string {
	return e.Where().String()
}

// ShortJoinDate returns the date the user joined n as "Jan 2, 2006".
func ShortJoinDate(n mesh.Network, p dates.Parser) string {
	if n.JoinDate == "" {
		return UnknownJoinDate
	}
	if p == nil {
		p = dates.New()
	}
	t, err := p.Parse(n.JoinDate)
	if err != nil {
		return UnknownJoinDate
	}
	return t.Format(ShortDateLayout)
}

// EventStart returns when e starts, in UTC, as "Sat, Jun 1, 2024 6:00 PM UTC".
func EventStart(e mesh.Event, p dates.Parser) string {
	if p == nil {
		p = dates.New()
	}
	t, err := p.Parse(e.Date)
	if err != nil {
		return UnknownStart
	}
	return t.Format(EventStartLayout)
}
