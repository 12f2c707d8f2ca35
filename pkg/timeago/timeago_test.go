package timeago_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/culturemesh/meshkit/pkg/clock"
	"github.com/culturemesh/meshkit/pkg/timeago"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newFormatter(opts ...timeago.Option) *timeago.Formatter {
	opts = append([]timeago.Option{
		timeago.WithClock(clock.Fixed(now)),
		timeago.WithEpochLocation(time.UTC),
	}, opts...)
	return timeago.New(opts...)
}

const day = 24 * time.Hour

func TestFormatter_Format_Buckets(t *testing.T) {
	t.Parallel()

	f := newFormatter()

	tests := []struct {
		name     string
		ago      time.Duration
		expected string
	}{
		{"now", 0, "just now"},
		{"9 seconds", 9 * time.Second, "just now"},
		{"sub-second", 999 * time.Millisecond, "just now"},
		{"10 seconds", 10 * time.Second, "10 second(s) ago"},
		{"59 seconds", 59 * time.Second, "59 second(s) ago"},
		{"60 seconds", 60 * time.Second, "a minute ago"},
		{"119 seconds", 119 * time.Second, "a minute ago"},
		{"120 seconds", 120 * time.Second, "2 minute(s) ago"},
		{"150 seconds rounds half to even", 150 * time.Second, "2 minute(s) ago"},
		{"210 seconds rounds half to even", 210 * time.Second, "4 minute(s) ago"},
		{"59 minutes", 59 * time.Minute, "59 minute(s) ago"},
		{"3599 seconds", 3599 * time.Second, "60 minute(s) ago"},
		{"1 hour", time.Hour, "an hour ago"},
		{"119 minutes", 119 * time.Minute, "an hour ago"},
		{"2 hours", 2 * time.Hour, "2 hour(s) ago"},
		{"2.5 hours rounds half to even", 150 * time.Minute, "2 hour(s) ago"},
		{"3.5 hours rounds half to even", 210 * time.Minute, "4 hour(s) ago"},
		{"23 hours 59 minutes", 23*time.Hour + 59*time.Minute, "24 hour(s) ago"},
		{"1 day", day, "Yesterday"},
		{"1 day 23 hours", day + 23*time.Hour, "Yesterday"},
		{"2 days", 2 * day, "2 day(s) ago"},
		{"6 days", 6 * day, "6 day(s) ago"},
		{"7 days", 7 * day, "1 week(s) ago"},
		{"10 days", 10 * day, "1 week(s) ago"},
		{"11 days", 11 * day, "2 week(s) ago"},
		{"30 days", 30 * day, "4 week(s) ago"},
		{"31 days", 31 * day, "1 month(s) ago"},
		{"40 days", 40 * day, "1 month(s) ago"},
		{"45 days rounds half to even", 45 * day, "2 month(s) ago"},
		{"75 days rounds half to even", 75 * day, "2 month(s) ago"},
		{"364 days", 364 * day, "12 month(s) ago"},
		{"365 days", 365 * day, "1 year(s) ago"},
		{"547 days", 547 * day, "1 year(s) ago"},
		{"913 days", 913 * day, "3 year(s) ago"},
		{"future by a second", -time.Second, ""},
		{"future by a nanosecond", -time.Nanosecond, ""},
		{"future by a day", -day, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, f.Format(timeago.Instant(now.Add(-tt.ago))))
			require.Equal(t, tt.expected, timeago.Describe(tt.ago))
		})
	}
}

func TestFormatter_Format_Variants(t *testing.T) {
	t.Parallel()

	f := newFormatter()

	t.Run("instant in another zone", func(t *testing.T) {
		t.Parallel()
		loc := time.FixedZone("UTC+9", 9*60*60)
		require.Equal(t, "an hour ago", f.Format(timeago.Instant(now.Add(-time.Hour).In(loc))))
	})

	t.Run("epoch seconds", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "5 minute(s) ago", f.Format(timeago.EpochSeconds(now.Add(-5*time.Minute).Unix())))
	})

	t.Run("date string", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Yesterday", f.Format(timeago.DateString("2024-05-31 12:00:00")))
		require.Equal(t, "3 hour(s) ago", f.Format(timeago.DateString("2024-06-01T11:00:00+02:00")))
	})

	t.Run("unparsable date string", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, timeago.Unknown, f.Format(timeago.DateString("the day before yesterday")))
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "just now", f.Format(timeago.Absent()))
		require.Equal(t, "just now", f.Format(timeago.Input{}))
		require.Equal(t, "just now", f.Format(timeago.DateString("")))
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, timeago.Unknown, f.Format(timeago.Unsupported(3.14)))
	})

	t.Run("very old instant does not saturate", func(t *testing.T) {
		t.Parallel()
		old := time.Date(1500, 6, 1, 12, 0, 0, 0, time.UTC)
		require.Equal(t, "524 year(s) ago", f.Format(timeago.Instant(old)))
	})
}

// Epoch seconds are read as a wall clock in the epoch location and then
// compared against UTC "now", so a zone east of UTC pushes them into the future.
func TestFormatter_EpochLocationAsymmetry(t *testing.T) {
	t.Parallel()

	hourAgo := now.Add(-time.Hour).Unix()

	utc := newFormatter(timeago.WithEpochLocation(time.UTC))
	require.Equal(t, "an hour ago", utc.Format(timeago.EpochSeconds(hourAgo)))

	east := newFormatter(timeago.WithEpochLocation(time.FixedZone("UTC+2", 2*60*60)))
	require.Equal(t, "", east.Format(timeago.EpochSeconds(hourAgo)))

	west := newFormatter(timeago.WithEpochLocation(time.FixedZone("UTC-3", -3*60*60)))
	require.Equal(t, "4 hour(s) ago", west.Format(timeago.EpochSeconds(hourAgo)))
}

func TestFormatter_FormatValue(t *testing.T) {
	t.Parallel()

	f := newFormatter()
	yesterday := now.Add(-day)
	var nilTime *time.Time

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "just now"},
		{"empty string", "", "just now"},
		{"nil *time.Time", nilTime, "just now"},
		{"zero time.Time", time.Time{}, "just now"},
		{"time.Time", yesterday, "Yesterday"},
		{"*time.Time", &yesterday, "Yesterday"},
		{"int", int(now.Add(-30 * time.Second).Unix()), "30 second(s) ago"},
		{"int64", now.Add(-3 * day).Unix(), "3 day(s) ago"},
		{"uint32", uint32(now.Add(-2 * time.Hour).Unix()), "2 hour(s) ago"},
		{"zero int is the epoch", 0, "54 year(s) ago"},
		{"string", "2024-04-22T12:00:00Z", "1 month(s) ago"},
		{"float", 3.14, timeago.Unknown},
		{"zero float is empty", 0.0, "just now"},
		{"bool", true, timeago.Unknown},
		{"false is empty", false, "just now"},
		{"empty slice", []string{}, "just now"},
		{"empty map", map[string]int{}, "just now"},
		{"nil pointer", (*int)(nil), "just now"},
		{"non-empty slice", []int{1}, timeago.Unknown},
		{"struct", struct{}{}, timeago.Unknown},
		{"input passthrough", timeago.Instant(yesterday), "Yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, f.FormatValue(tt.value))
		})
	}
}

func TestFromValue_Kinds(t *testing.T) {
	t.Parallel()

	require.Equal(t, timeago.KindAbsent, timeago.FromValue(nil).Kind())
	require.Equal(t, timeago.KindInstant, timeago.FromValue(now).Kind())
	require.Equal(t, timeago.KindEpochSeconds, timeago.FromValue(int64(1)).Kind())
	require.Equal(t, timeago.KindDateString, timeago.FromValue("2024-01-01").Kind())
	require.Equal(t, timeago.KindUnsupported, timeago.FromValue(3.14).Kind())
	require.Equal(t, "unsupported", timeago.KindUnsupported.String())
	require.Equal(t, "epoch_seconds", timeago.KindEpochSeconds.String())
}

func TestPackageFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "just now", timeago.Format(timeago.Instant(time.Now())))
	require.Equal(t, "just now", timeago.FormatValue(nil))
	require.Equal(t, "", timeago.Format(timeago.Instant(time.Now().Add(day))))
	require.Equal(t, "Yesterday", timeago.Format(timeago.Instant(time.Now().Add(-day-time.Minute))))
	require.Equal(t, timeago.Unknown, timeago.FormatValue(3.14))
}
