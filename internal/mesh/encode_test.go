package mesh

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokyoStation(t testing.TB) Coordinate {
	t.Helper()
	c, err := NewCoordinate(35.6812, 139.7671)
	require.NoError(t, err)
	return c
}

func TestEncode(t *testing.T) {
	tokyo := tokyoStation(t)

	tests := []struct {
		name  string
		level Level
		want  string
	}{
		{name: "Level1", level: Level1, want: "5339"},
		{name: "Level2", level: Level2, want: "533946"},
		{name: "Level3", level: Level3, want: "53394611"},
		{name: "Level4Half north-west quadrant", level: Level4Half, want: "533946113"},
		{name: "Level4Quarter row 2 col 1", level: Level4Quarter, want: "5339461110"},
		{name: "Level4Eighth row 5 col 2", level: Level4Eighth, want: "53394611043"},
		{name: "Level5 row 7 col 3", level: Level5, want: "5339461174"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tokyo, tt.level)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.level, got.Level())
			assert.Len(t, got.String(), tt.level.Digits())
		})
	}
}

func TestEncodeHalfQuadrants(t *testing.T) {
	third := MustParseCode("53394611")
	box := Decode(third)
	latStep := Level3.LatSize() / 4
	lonStep := Level3.LonSize() / 4

	tests := []struct {
		name       string
		latQ, lonQ float64 // position in quarters of the Level3 cell
		want       string
	}{
		{name: "north-east", latQ: 3, lonQ: 3, want: "533946111"},
		{name: "south-east", latQ: 1, lonQ: 3, want: "533946112"},
		{name: "north-west", latQ: 3, lonQ: 1, want: "533946113"},
		{name: "south-west", latQ: 1, lonQ: 1, want: "533946114"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := UncheckedCoordinate(box.MinLat()+tt.latQ*latStep, box.MinLon()+tt.lonQ*lonStep)
			assert.Equal(t, tt.want, Encode(p, Level4Half).String())
		})
	}
}

func TestEncodeSubdivisionRanges(t *testing.T) {
	third := MustParseCode("53394611")
	box := Decode(third)

	tests := []struct {
		level  Level
		n      int
		maxIdx int
	}{
		{level: Level4Quarter, n: 4, maxIdx: 16},
		{level: Level4Eighth, n: 8, maxIdx: 64},
		{level: Level5, n: 10, maxIdx: 100},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			seen := make(map[Code]bool)
			latStep := Level3.LatSize() / float64(tt.n)
			lonStep := Level3.LonSize() / float64(tt.n)
			for row := 0; row < tt.n; row++ {
				for col := 0; col < tt.n; col++ {
					p := UncheckedCoordinate(
						box.MinLat()+(float64(row)+0.5)*latStep,
						box.MinLon()+(float64(col)+0.5)*lonStep,
					)
					code := Encode(p, tt.level)
					s := code.String()
					require.Len(t, s, tt.level.Digits())
					assert.Equal(t, "53394611", s[:8])

					idx, err := strconv.Atoi(s[8:])
					require.NoError(t, err)
					want := row*tt.n + col + 1
					if want == 100 {
						want = 0
					}
					assert.Equal(t, want, idx, "row %d col %d", row, col)

					assert.True(t, code.Contains(p), "%s should contain %v", s, p)
					seen[code] = true
				}
			}
			assert.Len(t, seen, tt.maxIdx)
		})
	}
}

func TestEncodeLevel5LastCellRoundTrips(t *testing.T) {
	box := Decode(MustParseCode("53394611"))
	p := UncheckedCoordinate(
		box.MinLat()+9.5*Level5.LatSize(),
		box.MinLon()+9.5*Level5.LonSize(),
	)

	code := Encode(p, Level5)
	assert.Equal(t, "5339461100", code.String())
	assert.True(t, code.Contains(p))

	parsed, err := ParseCode(code.String())
	require.NoError(t, err)
	assert.Equal(t, code, parsed)

	parent, ok := code.Parent()
	require.True(t, ok)
	assert.Equal(t, "53394611", parent.String())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, level := range Levels() {
		level := level
		t.Run(level.String(), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				for j := 0; j < 100; j++ {
					lat := 20.0123 + float64(i)*0.2531
					lon := 122.0071 + float64(j)*0.3173
					c, err := NewCoordinate(lat, lon)
					require.NoError(t, err)

					code := Encode(c, level)
					if !Decode(code).Contains(c) {
						t.Fatalf("Decode(Encode(%v, %s)) = %+v does not contain the point", c, level, Decode(code))
					}
				}
			}
		})
	}
}

func TestEncodeEnvelopeCorners(t *testing.T) {
	corners := []struct{ lat, lon float64 }{
		{MinLat, MinLon},
		{MinLat, MaxLon},
		{MaxLat, MinLon},
		{MaxLat, MaxLon},
	}

	for _, corner := range corners {
		c, err := NewCoordinate(corner.lat, corner.lon)
		require.NoError(t, err)
		for _, level := range Levels() {
			code := Encode(c, level)
			assert.Len(t, code.String(), level.Digits())
			assert.True(t, code.Contains(c), "%s at %v", level, c)
		}
	}
}

func TestEncodePanicsOnUnknownLevel(t *testing.T) {
	assert.Panics(t, func() {
		Encode(tokyoStation(t), Level(0))
	})
	assert.Panics(t, func() {
		Encode(tokyoStation(t), Level(42))
	})
}

func BenchmarkEncode(b *testing.B) {
	c := tokyoStation(b)
	for i := 0; i < b.N; i++ {
		Encode(c, Level5)
	}
}
