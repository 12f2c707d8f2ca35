package dates

import "errors"

var (
	// ErrInvalidDate is returned for empty or unparsable date strings.
	ErrInvalidDate = errors.New("dates: invalid date")

	// ErrNaiveTime is returned in strict mode for date strings without a UTC offset.
	ErrNaiveTime = errors.New("dates: date has no UTC offset")
)
