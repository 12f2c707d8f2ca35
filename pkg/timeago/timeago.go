package timeago

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Unknown is returned for inputs that cannot be interpreted as a point in time.
const Unknown = "unknown time ago"

const secondsPerDay = 24 * 60 * 60

// Formatter renders relative time phrases against its clock.
// It is stateless and safe for concurrent use.
type Formatter struct {
	opts *options
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Formatter{opts: o}
}

// Format describes how long ago in happened.
func (f *Formatter) Format(in Input) string {
	now := f.opts.clock.Now()

	var past time.Time
	switch in.kind {
	case KindAbsent:
		past = now
	case KindInstant:
		past = in.instant
	case KindEpochSeconds:
		past = f.epochWallClock(in.epoch)
	case KindDateString:
		t, err := f.opts.parser.Parse(in.str)
		if err != nil {
			f.opts.logger.Debug("timeago: unparsable date",
				slog.String("value", in.str),
				slog.String("error", err.Error()),
			)
			return Unknown
		}
		past = t
	default:
		return Unknown
	}

	return describe(elapsedSeconds(now, past))
}

// FormatValue classifies v with FromValue and formats it.
func (f *Formatter) FormatValue(v any) string {
	return f.Format(FromValue(v))
}

// epochWallClock converts a Unix timestamp to its wall clock in the epoch
// location and reads that wall clock as UTC.
func (f *Formatter) epochWallClock(sec int64) time.Time {
	w := time.Unix(sec, 0).In(f.opts.epochLoc)
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), time.UTC)
}

// Describe formats an elapsed duration. Negative durations yield "".
func Describe(d time.Duration) string {
	sec := int64(d / time.Second)
	if d%time.Second < 0 {
		sec--
	}
	return describe(sec)
}

var defaultFormatter = New()

// Format formats in against the system clock.
func Format(in Input) string {
	return defaultFormatter.Format(in)
}

// FormatValue formats v against the system clock.
func FormatValue(v any) string {
	return defaultFormatter.FormatValue(v)
}

// elapsedSeconds returns floor(now - past) in whole seconds without going
// through time.Duration, which saturates at about 292 years.
func elapsedSeconds(now, past time.Time) int64 {
	sec := now.Unix() - past.Unix()
	if now.Nanosecond() < past.Nanosecond() {
		sec--
	}
	return sec
}

func describe(total int64) string {
	days := total / secondsPerDay
	if total%secondsPerDay < 0 {
		days--
	}
	secs := total - days*secondsPerDay

	switch {
	case days < 0:
		return ""
	case days == 0:
		switch {
		case secs < 10:
			return "just now"
		case secs < 60:
			return fmt.Sprintf("%d second(s) ago", secs)
		case secs < 120:
			return "a minute ago"
		case secs < 3600:
			return fmt.Sprintf("%d minute(s) ago", roundDiv(secs, 60))
		case secs < 7200:
			return "an hour ago"
		default:
			return fmt.Sprintf("%d hour(s) ago", roundDiv(secs, 3600))
		}
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d day(s) ago", days)
	case days < 31:
		return fmt.Sprintf("%d week(s) ago", roundDiv(days, 7))
	case days < 365:
		return fmt.Sprintf("%d month(s) ago", roundDiv(days, 30))
	default:
		return fmt.Sprintf("%d year(s) ago", roundDiv(days, 365))
	}
}

// roundDiv returns n/d rounded half to even.
func roundDiv(n, d int64) int64 {
	return int64(math.RoundToEven(float64(n) / float64(d)))
}
