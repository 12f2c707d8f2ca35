package timeago

import (
	"fmt"
	"reflect"
	"time"
)

// Kind tags the shape of an Input.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindInstant
	KindEpochSeconds
	KindDateString
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInstant:
		return "instant"
	case KindEpochSeconds:
		return "epoch_seconds"
	case KindDateString:
		return "date_string"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Input is a point in time in one of the shapes the formatter accepts.
// The zero value is Absent.
type Input struct {
	instant time.Time
	str     string
	raw     any
	epoch   int64
	kind    Kind
}

// Kind returns the variant tag.
func (in Input) Kind() Kind {
	return in.kind
}

// Instant wraps an absolute instant.
func Instant(t time.Time) Input {
	return Input{kind: KindInstant, instant: t}
}

// EpochSeconds wraps a Unix timestamp in seconds.
func EpochSeconds(sec int64) Input {
	return Input{kind: KindEpochSeconds, epoch: sec}
}

// DateString wraps a date string to be parsed. An empty string is Absent.
func DateString(s string) Input {
	if s == "" {
		return Absent()
	}
	return Input{kind: KindDateString, str: s}
}

// Absent stands for a missing value; it formats as "just now".
func Absent() Input {
	return Input{kind: KindAbsent}
}

// Unsupported wraps a value of a type the formatter does not understand.
func Unsupported(v any) Input {
	return Input{kind: KindUnsupported, raw: v}
}

// FromValue classifies a dynamically typed value:
// time.Time and *time.Time are instants, integers (zero included) are epoch
// seconds, strings are date strings, and everything else (floats included) is
// unsupported. Empty values are absent: nil, nil pointers, the zero
// time.Time, "", false, a zero float, and empty slices, maps and arrays.
func FromValue(v any) Input {
	switch x := v.(type) {
	case nil:
		return Absent()
	case Input:
		return x
	case time.Time:
		if x.IsZero() {
			return Absent()
		}
		return Instant(x)
	case *time.Time:
		if x == nil || x.IsZero() {
			return Absent()
		}
		return Instant(*x)
	case string:
		return DateString(x)
	case *string:
		if x == nil {
			return Absent()
		}
		return DateString(*x)
	case int:
		return EpochSeconds(int64(x))
	case int8:
		return EpochSeconds(int64(x))
	case int16:
		return EpochSeconds(int64(x))
	case int32:
		return EpochSeconds(int64(x))
	case int64:
		return EpochSeconds(x)
	case uint:
		return EpochSeconds(int64(x))
	case uint8:
		return EpochSeconds(int64(x))
	case uint16:
		return EpochSeconds(int64(x))
	case uint32:
		return EpochSeconds(int64(x))
	case uint64:
		return EpochSeconds(int64(x))
	case bool:
		if !x {
			return Absent()
		}
	case float32:
		if x == 0 {
			return Absent()
		}
	case float64:
		if x == 0 {
			return Absent()
		}
	default:
		if isEmpty(reflect.ValueOf(v)) {
			return Absent()
		}
	}
	return Unsupported(v)
}

func isEmpty(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	default:
		return false
	}
}
