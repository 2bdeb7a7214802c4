package mesh

import (
	"fmt"
	"strconv"
)

var pow10 = [...]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000,
	1000000000, 10000000000, 100000000000,
}

// Code identifies one mesh cell: a level plus the numeric value of its
// zero-padded decimal form. Code is comparable and can be used as a map key.
//
// Go Learning Note — Comparable Structs:
// A struct whose fields are all comparable can be compared with == and used
// as a map key, with equality defined field by field. That gives Code value
// semantics for free: two codes are equal exactly when level and value match.
type Code struct {
	level Level
	value uint64
}

// NewCode builds a code from a level and its numeric value. The value must
// fit in the level's digit length once zero-padded.
func NewCode(level Level, value uint64) (Code, error) {
	if !level.Valid() {
		return Code{}, fmt.Errorf("%w: %d", ErrUnknownLevel, uint8(level))
	}
	if value >= pow10[level.Digits()] {
		return Code{}, fmt.Errorf("%w: %d at level %s", ErrCodeOverflow, value, level)
	}
	return Code{level: level, value: value}, nil
}

// ParseCode parses a canonical code string. The level is inferred from the
// number of digits.
func ParseCode(s string) (Code, error) {
	if s == "" {
		return Code{}, ErrEmptyCode
	}
	for i, r := range s {
		if r < '0' || r > '9' {
			return Code{}, &DigitError{Char: r, Position: i}
		}
	}
	level, err := levelForCode(s)
	if err != nil {
		return Code{}, err
	}
	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Code{}, fmt.Errorf("parse mesh code %q: %w", s, err)
	}
	return Code{level: level, value: value}, nil
}

// MustParseCode is like ParseCode but panics on error. Intended for
// constants and tests.
func MustParseCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Code) Level() Level  { return c.level }
func (c Code) Value() uint64 { return c.value }

// IsZero reports whether c is the zero Code, which names no cell.
func (c Code) IsZero() bool { return c.level == 0 }

func (c Code) String() string {
	if !c.level.Valid() {
		return ""
	}
	return fmt.Sprintf("%0*d", c.level.Digits(), c.value)
}

func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// truncate drops the trailing digits that separate c from an ancestor level.
func (c Code) truncate(target Level) Code {
	drop := c.level.Digits() - target.Digits()
	return Code{level: target, value: c.value / pow10[drop]}
}
