// Package events aggregates upcoming CultureMesh events.
//
// An [Aggregator] reads events from a [Source] and returns the next N
// events that start at or after the current instant, soonest first. Two
// scopes are supported:
//
//   - [Aggregator.UpcomingByNetwork] looks at up to 200 events of one network.
//   - [Aggregator.UpcomingByUser] looks at up to 10 events from each of up to
//     200 networks the user belongs to, merged into one collection.
//
// Basic usage:
//
//	agg := events.New(client,
//	    events.WithClock(clock.System()),
//	    events.WithParser(dates.New()),
//	)
//
//	next, err := agg.UpcomingByUser(ctx, userID, 5)
//
// An event starting exactly "now" counts as upcoming. Events sharing a start
// instant keep the order the source returned them in.
//
// # Fan-out
//
// The per-network fetches of [Aggregator.UpcomingByUser] run sequentially by
// default. [WithConcurrency] fetches several networks at once; results are
// still merged in network order, so the output does not depend on which
// fetch finishes first.
//
// # Error Handling
//
// Errors from the [Source] are returned unchanged, so callers can tell "no
// events" (empty slice, nil error) from "could not fetch events". An event
// whose date is missing or unparsable fails the whole call with an error
// matching [ErrInvalidEventDate]; nothing is skipped silently.
package events
