package dates

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parser turns a date string into an absolute instant.
// Implementations return times in UTC.
type Parser interface {
	Parse(s string) (time.Time, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(s string) (time.Time, error)

// Parse calls f.
func (f ParserFunc) Parse(s string) (time.Time, error) {
	return f(s)
}

// Option configures the default parser.
type Option func(*options)

type options struct {
	loc    *time.Location
	strict bool
}

// WithLocation sets the location used for strings without an offset.
// Default: UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithStrictOffset rejects strings without an explicit offset with ErrNaiveTime.
func WithStrictOffset() Option {
	return func(o *options) {
		o.strict = true
	}
}

// probe differs from every real zone offset used as a default location, so
// parsing the same naive string in UTC and in probe yields different instants.
var probe = time.FixedZone("meshkit-probe", 13*60*60+17*60)

type defaultParser struct {
	opts options
}

// New returns the default Parser backed by github.com/araddon/dateparse.
func New(opts ...Option) Parser {
	o := options{loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return &defaultParser{opts: o}
}

// Parse parses s and returns the instant in UTC.
func (p *defaultParser) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.Join(ErrInvalidDate, errors.New("empty date string"))
	}

	inUTC, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}

	inProbe, err := dateparse.ParseIn(s, probe)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}

	if inUTC.Equal(inProbe) {
		// The string carries its own offset.
		return inUTC.UTC(), nil
	}

	if p.opts.strict {
		return time.Time{}, ErrNaiveTime
	}

	if p.opts.loc == time.UTC {
		return inUTC, nil
	}

	t, err := dateparse.ParseIn(s, p.opts.loc)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}
	return t.UTC(), nil
}

// MustParse parses s with the default parser and panics on failure.
// Intended for fixtures and tests.
func MustParse(s string) time.Time {
	t, err := New().Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}
