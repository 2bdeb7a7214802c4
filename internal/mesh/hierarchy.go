package mesh

import "fmt"

// Parent returns the code one level up. Every Level4 variant and Level5 have
// Level3 as parent; Level1 has none.
func (c Code) Parent() (Code, bool) {
	p, ok := c.level.Parent()
	if !ok {
		return Code{}, false
	}
	return c.truncate(p), true
}

// Children enumerates the codes one level down, row by row from the south:
// 64 Level2 codes under Level1, 100 Level3 codes under Level2, and the four
// Level4Half quadrants (1-4) under Level3. Finer codes have no children.
func (c Code) Children() []Code {
	switch c.level {
	case Level1:
		return c.grid(Level2, 8)
	case Level2:
		return c.grid(Level3, 10)
	case Level3:
		out := make([]Code, 0, 4)
		for i := uint64(1); i <= 4; i++ {
			out = append(out, Code{level: Level4Half, value: c.value*10 + i})
		}
		return out
	}
	return nil
}

func (c Code) grid(child Level, n uint64) []Code {
	out := make([]Code, 0, n*n)
	for row := uint64(0); row < n; row++ {
		for col := uint64(0); col < n; col++ {
			out = append(out, Code{level: child, value: c.value*100 + row*10 + col})
		}
	}
	return out
}

// ToLevel projects c onto target, which must be c's own level or one of its
// ancestors. Asking for a finer level, or for a sibling such as Level4Half
// from Level5, fails with ErrUnsupportedRefinement: there is no single
// answer.
func (c Code) ToLevel(target Level) (Code, error) {
	if !target.Valid() {
		return Code{}, fmt.Errorf("%w: %d", ErrUnknownLevel, uint8(target))
	}
	if target == c.level {
		return c, nil
	}
	if !target.IsAncestorOf(c.level) {
		return Code{}, fmt.Errorf("%w: %s to %s", ErrUnsupportedRefinement, c.level, target)
	}
	return c.truncate(target), nil
}
