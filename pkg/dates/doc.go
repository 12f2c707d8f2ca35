// Package dates parses date strings returned by the CultureMesh API into
// absolute, UTC-normalized instants.
//
// The default [Parser] accepts every layout understood by
// github.com/araddon/dateparse (RFC 3339, "2006-01-02 15:04:05",
// "2006-01-02", RFC 1123, and many more):
//
//	p := dates.New()
//	t, err := p.Parse("2024-05-01 18:30:00")
//
// Strings without an explicit offset are read in the parser's default
// location, which is UTC unless [WithLocation] says otherwise. Use
// [WithStrictOffset] to reject such strings with [ErrNaiveTime] instead:
//
//	strict := dates.New(dates.WithStrictOffset())
//	_, err := strict.Parse("2024-05-01 18:30:00")
//	// errors.Is(err, dates.ErrNaiveTime) == true
//
// # Error Handling
//
//   - [ErrInvalidDate] - empty or unparsable input
//   - [ErrNaiveTime] - input has no offset and strict mode is on
package dates
