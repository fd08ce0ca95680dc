package lexord

import "fmt"

// Range is a numeric interval with optional gt/gte/lt/lte boundaries. It is
// the query-side companion of Codec: a Range built here is encoded with
// EncodeRange into string bounds that a lexicographic store can scan.
type Range struct {
	gt  *int64
	gte *int64
	lt  *int64
	lte *int64
}

// NewRange validates and creates a Range.
// At least one boundary is required. gt/gte and lt/lte are mutually exclusive.
func NewRange(gt, gte, lt, lte *int64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("%w: at least one boundary is required", ErrInvalidRange)
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("%w: cannot specify both gt and gte", ErrInvalidRange)
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("%w: cannot specify both lt and lte", ErrInvalidRange)
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *int64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *int64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *int64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *int64 { return r.lte }

// Matches reports whether v satisfies every boundary of the range.
func (r Range) Matches(v int64) bool {
	if r.gt != nil && v <= *r.gt {
		return false
	}
	if r.gte != nil && v < *r.gte {
		return false
	}
	if r.lt != nil && v >= *r.lt {
		return false
	}
	if r.lte != nil && v > *r.lte {
		return false
	}
	return true
}

// StringRange is a closed lexicographic interval over encoded values. A
// value v matches the originating Range exactly when
// Min <= Encode(v) <= Max byte-wise.
type StringRange struct {
	Min string
	Max string
}

// EncodeRange resolves r against the codec domain and returns inclusive
// encoded string bounds. Exclusive boundaries are normalized numerically
// (gt x becomes gte x+1) so the result is always a closed interval, which
// every lexicographic scanner can consume. Boundaries outside [Min, Max]
// return ErrOutOfRange; a range that cannot select any value returns
// ErrEmptyRange.
func (c Codec) EncodeRange(r Range) (StringRange, error) {
	lo := c.min
	hi := c.max

	switch {
	case r.gt != nil:
		b := *r.gt
		if !c.Contains(b) {
			return StringRange{}, fmt.Errorf("%w: lower bound %d is outside [%d, %d]", ErrOutOfRange, b, c.min, c.max)
		}
		if b == c.max {
			return StringRange{}, fmt.Errorf("%w: nothing above %d in the domain", ErrEmptyRange, b)
		}
		lo = b + 1
	case r.gte != nil:
		b := *r.gte
		if !c.Contains(b) {
			return StringRange{}, fmt.Errorf("%w: lower bound %d is outside [%d, %d]", ErrOutOfRange, b, c.min, c.max)
		}
		lo = b
	}

	switch {
	case r.lt != nil:
		b := *r.lt
		if !c.Contains(b) {
			return StringRange{}, fmt.Errorf("%w: upper bound %d is outside [%d, %d]", ErrOutOfRange, b, c.min, c.max)
		}
		if b == c.min {
			return StringRange{}, fmt.Errorf("%w: nothing below %d in the domain", ErrEmptyRange, b)
		}
		hi = b - 1
	case r.lte != nil:
		b := *r.lte
		if !c.Contains(b) {
			return StringRange{}, fmt.Errorf("%w: upper bound %d is outside [%d, %d]", ErrOutOfRange, b, c.min, c.max)
		}
		hi = b
	}

	if lo > hi {
		return StringRange{}, fmt.Errorf("%w: bounds cross after normalization (%d > %d)", ErrEmptyRange, lo, hi)
	}

	minEnc, err := c.Encode(lo)
	if err != nil {
		return StringRange{}, err
	}
	maxEnc, err := c.Encode(hi)
	if err != nil {
		return StringRange{}, err
	}
	return StringRange{Min: minEnc, Max: maxEnc}, nil
}
