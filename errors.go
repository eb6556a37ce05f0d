package qrencode

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVersion   = errors.New("qrencode: invalid version")
	ErrInvalidLevel     = errors.New("qrencode: invalid error correction level")
	ErrInvalidMask      = errors.New("qrencode: invalid mask pattern")
	ErrInvalidMode      = errors.New("qrencode: invalid mode")
	ErrInvalidCharacter = errors.New("qrencode: character not valid in mode")
	ErrEmptyContent     = errors.New("qrencode: no data to encode")
	ErrCapacityExceeded = errors.New("qrencode: content too long to encode")
	ErrInvalidBitmap    = errors.New("qrencode: bitmap allocator returned unusable storage")

	// ErrBlockSizeMismatch reports disagreement between the encoded data and
	// the error correction block plan. It indicates a bug, not bad input.
	ErrBlockSizeMismatch = errors.New("qrencode: block size mismatch")

	ErrMalformedFormatInfo  = errors.New("qrencode: malformed format information")
	ErrMalformedVersionInfo = errors.New("qrencode: malformed version information")
)

// CapacityError is returned when content does not fit the requested version,
// or any version, at the requested level.
type CapacityError struct {
	// Requested version, 0 if none was requested.
	Requested int

	// Minimum version able to hold the content, 0 if no version can.
	Minimum int

	// Spare is set when the content fits the requested version but would
	// leave 1-7 bits unused, which is not a valid layout.
	Spare int

	Level Level
}

func (e *CapacityError) Error() string {
	switch {
	case e.Minimum == 0:
		return fmt.Sprintf("%s: no version fits at level %s", ErrCapacityExceeded, e.Level)
	case e.Spare > 0:
		return fmt.Sprintf("%s: version %d-%s would leave %d bits unused, less than a codeword",
			ErrCapacityExceeded, e.Requested, e.Level, e.Spare)
	case e.Requested != 0 && e.Requested < e.Minimum:
		return fmt.Sprintf("%s: version %d-%s requested, %d-%s required",
			ErrCapacityExceeded, e.Requested, e.Level, e.Minimum, e.Level)
	case e.Requested != 0:
		return fmt.Sprintf("%s: content does not fit version %d-%s", ErrCapacityExceeded, e.Requested, e.Level)
	default:
		return fmt.Sprintf("%s: version %d-%s required", ErrCapacityExceeded, e.Minimum, e.Level)
	}
}

// Unwrap makes errors.Is(err, ErrCapacityExceeded) hold.
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// bug panics on states only reachable through a programming error, such as
// a mode or size class outside the fixed tables.
func bug(format string, args ...any) {
	panic(fmt.Sprintf("qrencode: bug: "+format, args...))
}
