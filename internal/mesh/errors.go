package mesh

import (
	"errors"
	"fmt"
)

// Coordinate validation errors.
var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrOutOfRange       = errors.New("coordinate is outside the mesh envelope (lat 20-46, lon 122-154)")
)

// Code format errors.
var (
	ErrEmptyCode     = errors.New("empty mesh code")
	ErrInvalidDigit  = errors.New("invalid digit in mesh code")
	ErrInvalidLength = errors.New("unsupported mesh code length")
	ErrCodeOverflow  = errors.New("mesh code value has too many digits for its level")
)

// Navigation and lookup errors.
var (
	ErrUnsupportedRefinement = errors.New("cannot convert to a finer or non-ancestor level")
	ErrUnknownLevel          = errors.New("unknown mesh level")
	ErrUnknownDirection      = errors.New("unknown direction")
)

// DigitError reports the first non-digit character of a code string.
// It matches ErrInvalidDigit under errors.Is.
type DigitError struct {
	Char     rune
	Position int
}

func (e *DigitError) Error() string {
	return fmt.Sprintf("invalid digit %q at position %d", e.Char, e.Position)
}

func (e *DigitError) Unwrap() error {
	return ErrInvalidDigit
}
