// Package mesh implements the national grid-square standard ("regional mesh
// codes"): a hierarchy of fixed rectangular cells covering the country, each
// identified by a decimal code whose leading digits name its ancestors.
//
// Seven precision levels are supported:
//
//	Level1         4 digits   40' x 1°        ~80 km
//	Level2         6 digits   5' x 7'30"      ~10 km
//	Level3         8 digits   30" x 45"       ~1 km
//	Level4Half     9 digits   15" x 22.5"     ~500 m
//	Level4Quarter 10 digits   7.5" x 11.25"   ~250 m
//	Level4Eighth  11 digits   3.75" x 5.625"  ~125 m
//	Level5        10 digits   3" x 4.5"       ~100 m
//
// Level1 to Level3 subdivide their parent 8x8 and 10x10. Every Level4 variant
// and Level5 subdivide a Level3 cell directly, so they are siblings in the
// hierarchy rather than a chain.
//
// Go Learning Note — Closed Enumerations:
// Go has no sum types, so a closed set of variants is modelled as a small
// named integer type with iota constants. Behaviour that differs per variant
// lives in a switch or, as here, a fixed table indexed by the constant. The
// table is never written after initialisation, so it needs no locking.
package mesh

import (
	"fmt"
	"strings"
)

// Level is one of the seven mesh precision tiers, ordered coarse to fine.
type Level uint8

const (
	Level1 Level = iota + 1
	Level2
	Level3
	Level4Half
	Level4Quarter
	Level4Eighth
	Level5
)

type levelInfo struct {
	name       string
	digits     int
	latSize    float64 // degrees
	lonSize    float64 // degrees
	sizeMeters float64
	parent     Level // 0 for Level1
}

var levelTable = [...]levelInfo{
	Level1:        {"first", 4, 40.0 / 60.0, 1.0, 80000, 0},
	Level2:        {"second", 6, 5.0 / 60.0, 7.5 / 60.0, 10000, Level1},
	Level3:        {"third", 8, 30.0 / 3600.0, 45.0 / 3600.0, 1000, Level2},
	Level4Half:    {"fourth-half", 9, 15.0 / 3600.0, 22.5 / 3600.0, 500, Level3},
	Level4Quarter: {"fourth-quarter", 10, 7.5 / 3600.0, 11.25 / 3600.0, 250, Level3},
	Level4Eighth:  {"fourth-eighth", 11, 3.75 / 3600.0, 5.625 / 3600.0, 125, Level3},
	Level5:        {"fifth", 10, 3.0 / 3600.0, 4.5 / 3600.0, 100, Level3},
}

// Levels returns all levels from coarsest to finest.
func Levels() []Level {
	return []Level{Level1, Level2, Level3, Level4Half, Level4Quarter, Level4Eighth, Level5}
}

// Valid reports whether l is one of the seven defined levels.
func (l Level) Valid() bool {
	return l >= Level1 && l <= Level5
}

func (l Level) info() levelInfo {
	if !l.Valid() {
		panic(fmt.Sprintf("mesh: invalid level %d", uint8(l)))
	}
	return levelTable[l]
}

// Digits is the fixed length of a code string at this level.
func (l Level) Digits() int { return l.info().digits }

// LatSize is the cell height in degrees.
func (l Level) LatSize() float64 { return l.info().latSize }

// LonSize is the cell width in degrees.
func (l Level) LonSize() float64 { return l.info().lonSize }

// ApproximateSizeMeters is the nominal edge length of a cell.
func (l Level) ApproximateSizeMeters() float64 { return l.info().sizeMeters }

// Parent returns the immediately coarser level. Level1 has none.
func (l Level) Parent() (Level, bool) {
	p := l.info().parent
	return p, p != 0
}

// IsAncestorOf reports whether every code at level other has a unique
// ancestor at level l.
func (l Level) IsAncestorOf(other Level) bool {
	for p, ok := other.Parent(); ok; p, ok = p.Parent() {
		if p == l {
			return true
		}
	}
	return false
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
	return levelTable[l].name
}

// ParseLevel accepts a level name ("third", "fourth-half"), its ordinal
// ("3"), or a short alias ("4half", "4q", "5").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "first", "level1":
		return Level1, nil
	case "2", "second", "level2":
		return Level2, nil
	case "3", "third", "level3":
		return Level3, nil
	case "4half", "4h", "fourth-half", "half", "level4half":
		return Level4Half, nil
	case "4quarter", "4q", "fourth-quarter", "quarter", "level4quarter":
		return Level4Quarter, nil
	case "4eighth", "4e", "fourth-eighth", "eighth", "level4eighth":
		return Level4Eighth, nil
	case "5", "fifth", "level5":
		return Level5, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// levelForCode infers the level of a digit string. Level4Quarter and Level5
// share a length of ten; the ninth digit decides: 1-4 is Level4Quarter,
// anything else Level5.
func levelForCode(s string) (Level, error) {
	switch len(s) {
	case 4:
		return Level1, nil
	case 6:
		return Level2, nil
	case 8:
		return Level3, nil
	case 9:
		return Level4Half, nil
	case 10:
		if d := s[8]; d >= '1' && d <= '4' {
			return Level4Quarter, nil
		}
		return Level5, nil
	case 11:
		return Level4Eighth, nil
	}
	return 0, fmt.Errorf("%w: %d digits", ErrInvalidLength, len(s))
}
