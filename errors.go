package lexord

import "errors"

var (
	// ErrOutOfRange signals a value outside the codec domain [Min, Max].
	ErrOutOfRange = errors.New("value out of range")
	// ErrMalformedEncoding signals decode input that is not a fixed-width digit string.
	ErrMalformedEncoding = errors.New("malformed encoding")
	// ErrInvalidDomain signals a codec whose digit space cannot hold its domain.
	ErrInvalidDomain = errors.New("invalid codec domain")

	// ErrInvalidRange signals an unsatisfiable range construction.
	ErrInvalidRange = errors.New("invalid range")
	// ErrEmptyRange signals a range that cannot select any value.
	ErrEmptyRange = errors.New("empty range")

	// ErrInvalidSchema signals an invalid corpus struct schema.
	ErrInvalidSchema = errors.New("invalid corpus schema")
)
