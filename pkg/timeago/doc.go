// Package timeago renders instants as short English "ago" phrases such as
// "just now", "5 minute(s) ago", "Yesterday", or "3 month(s) ago".
//
// Inputs come in several shapes, modeled as the tagged [Input] variant:
//
//	f := timeago.New(timeago.WithClock(clock.System()))
//
//	f.Format(timeago.Instant(t))                  // absolute instant
//	f.Format(timeago.EpochSeconds(1700000000))    // Unix seconds, read as local wall clock
//	f.Format(timeago.DateString("2024-05-01"))    // parsed with dates.Parser
//	f.Format(timeago.Absent())                    // "just now"
//	f.FormatValue(3.14)                           // "unknown time ago"
//
// # Buckets
//
// The elapsed time is split into whole days and the seconds left over, then
// matched top to bottom:
//
//	future              ""
//	< 10 seconds        "just now"
//	< 1 minute          "<n> second(s) ago"
//	< 2 minutes         "a minute ago"
//	< 1 hour            "<n> minute(s) ago"
//	< 2 hours           "an hour ago"
//	< 1 day             "<n> hour(s) ago"
//	1 day               "Yesterday"
//	< 7 days            "<n> day(s) ago"
//	< 31 days           "<n> week(s) ago"
//	< 365 days          "<n> month(s) ago"
//	otherwise           "<n> year(s) ago"
//
// Fractional counts are rounded half to even. Future instants yield an empty
// string, and the formatter never fails: unsupported or unparsable inputs
// yield [Unknown].
package timeago
