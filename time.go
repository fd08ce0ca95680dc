package lexord

import (
	"fmt"
	"time"
)

// Timestamps need no shift-and-pad trick: ISO-8601 text is already
// lexicographically ordered, provided every encoding has the same width and
// the same zone. The helpers below pin both down — UTC only, fixed
// millisecond precision, four-digit years.
const (
	timeLayout = "2006-01-02T15:04:05.000Z"
	dateLayout = "2006-01-02"

	// TimeWidth is the byte length of every EncodeTime output.
	TimeWidth = len(timeLayout)
	// DateWidth is the byte length of every EncodeDate output.
	DateWidth = len(dateLayout)
)

// EncodeTime renders t as a fixed-width UTC ISO-8601 string with millisecond
// precision. For instants that differ at millisecond precision or coarser,
// a.Before(b) holds exactly when EncodeTime(a) < EncodeTime(b) byte-wise.
// Years outside [0, 9999] would break the fixed width and return
// ErrOutOfRange.
func EncodeTime(t time.Time) (string, error) {
	u := t.UTC()
	if y := u.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("%w: year %d is not representable in four digits", ErrOutOfRange, y)
	}
	return u.Format(timeLayout), nil
}

// DecodeTime parses an EncodeTime output back into a UTC instant. Anything
// but the exact 24-byte layout returns ErrMalformedEncoding.
func DecodeTime(s string) (time.Time, error) {
	if len(s) != TimeWidth {
		return time.Time{}, fmt.Errorf("%w: want %d characters, got %d", ErrMalformedEncoding, TimeWidth, len(s))
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a sortable timestamp", ErrMalformedEncoding, s)
	}
	return t, nil
}

// EncodeDate renders the UTC calendar date of t as a fixed-width ISO-8601
// day string. Byte order equals day order under the same year constraint as
// EncodeTime.
func EncodeDate(t time.Time) (string, error) {
	u := t.UTC()
	if y := u.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("%w: year %d is not representable in four digits", ErrOutOfRange, y)
	}
	return u.Format(dateLayout), nil
}

// DecodeDate parses an EncodeDate output into midnight UTC of that day.
func DecodeDate(s string) (time.Time, error) {
	if len(s) != DateWidth {
		return time.Time{}, fmt.Errorf("%w: want %d characters, got %d", ErrMalformedEncoding, DateWidth, len(s))
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a sortable date", ErrMalformedEncoding, s)
	}
	return t, nil
}
