package lexord

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// maxWidth is the widest supported encoding. Twenty decimal digits cover the
// full uint64 shift space, which is enough for the complete int64 domain.
const maxWidth = 20

// pow10[i] == 10^i.
var pow10 = [...]uint64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
	10000000000000000000,
}

// Codec bijectively maps signed integers in a closed domain [Min, Max] onto
// fixed-width decimal strings so that plain byte-wise string comparison of
// two encodings always agrees with numeric comparison of the values.
//
// Encoding shifts the value by -Min into the non-negative range and renders
// it left-padded with zeros to exactly Width digits. Variable length and
// sign characters are what break lexicographic sorting of plain decimal
// strings ("10" < "2", "-1" > "-10"), so both are eliminated up front.
//
// Codec is an immutable value object. The zero value is not usable; build
// one with New or a preset. Values are safe for unrestricted concurrent use.
type Codec struct {
	min   int64
	max   int64
	width int
}

// New validates and creates a Codec for the closed domain [min, max] encoded
// as width decimal digits. Width and domain must be chosen together so that
// 10^width >= max - min + 1, otherwise the digit space cannot hold the
// domain and New returns ErrInvalidDomain.
func New(width int, min, max int64) (Codec, error) {
	if width < 1 || width > maxWidth {
		return Codec{}, fmt.Errorf("%w: width must be between 1 and %d, got %d", ErrInvalidDomain, maxWidth, width)
	}
	if min > max {
		return Codec{}, fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidDomain, min, max)
	}
	// span is max-min computed in uint64 so the full int64 domain stays exact.
	span := uint64(max) - uint64(min)
	if width < maxWidth && span >= pow10[width] {
		return Codec{}, fmt.Errorf("%w: domain [%d, %d] does not fit in %d digits", ErrInvalidDomain, min, max, width)
	}
	return Codec{min: min, max: max, width: width}, nil
}

// Int32 returns the codec for the full signed 32-bit domain:
// width 10, [-2147483648, 2147483647]. This is the default scheme used by
// corpora unless configured otherwise.
func Int32() Codec {
	return Codec{min: math.MinInt32, max: math.MaxInt32, width: 10}
}

// Int64 returns the codec for the full signed 64-bit domain (width 20).
func Int64() Codec {
	return Codec{min: math.MinInt64, max: math.MaxInt64, width: maxWidth}
}

// Unsigned returns a codec for the domain [0, 10^width-1]. Width is capped
// at 18 so the domain maximum stays representable as int64.
func Unsigned(width int) (Codec, error) {
	if width < 1 || width > 18 {
		return Codec{}, fmt.Errorf("%w: unsigned width must be between 1 and 18, got %d", ErrInvalidDomain, width)
	}
	return Codec{min: 0, max: int64(pow10[width] - 1), width: width}, nil
}

// Width returns the fixed encoding width in digits.
func (c Codec) Width() int { return c.width }

// Min returns the smallest encodable value.
func (c Codec) Min() int64 { return c.min }

// Max returns the largest encodable value.
func (c Codec) Max() int64 { return c.max }

// Contains reports whether v lies inside the codec domain.
func (c Codec) Contains(v int64) bool { return v >= c.min && v <= c.max }

// String returns a debug representation.
func (c Codec) String() string {
	return fmt.Sprintf("Codec(width=%d, domain=[%d, %d])", c.width, c.min, c.max)
}

// Encode renders v as a fixed-width decimal string. For all x, y in the
// domain: x < y if and only if Encode(x) < Encode(y) byte-wise, and
// Decode(Encode(x)) == x. Values outside [Min, Max] return ErrOutOfRange.
func (c Codec) Encode(v int64) (string, error) {
	if v < c.min || v > c.max {
		return "", fmt.Errorf("%w: %d is outside [%d, %d]", ErrOutOfRange, v, c.min, c.max)
	}
	// Two's complement subtraction in uint64 yields the exact non-negative
	// shift even when the domain spans the whole int64 range.
	shifted := uint64(v) - uint64(c.min)
	return fmt.Sprintf("%0*d", c.width, shifted), nil
}

// Decode parses a string produced by Encode back into its value. Input that
// is not exactly Width ASCII digits returns ErrMalformedEncoding; a
// well-formed digit string that maps outside [Min, Max] returns
// ErrOutOfRange.
func (c Codec) Decode(s string) (int64, error) {
	if len(s) != c.width {
		return 0, fmt.Errorf("%w: want %d characters, got %d", ErrMalformedEncoding, c.width, len(s))
	}
	shifted, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// ParseUint range overflow means a structurally valid digit string
		// beyond any supported domain.
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q decodes outside [%d, %d]", ErrOutOfRange, s, c.min, c.max)
		}
		return 0, fmt.Errorf("%w: %q is not an unsigned decimal string", ErrMalformedEncoding, s)
	}
	if shifted > uint64(c.max)-uint64(c.min) {
		return 0, fmt.Errorf("%w: %q decodes outside [%d, %d]", ErrOutOfRange, s, c.min, c.max)
	}
	return int64(uint64(c.min) + shifted), nil
}
