package mesh

import "math"

// digits holds the components of a code from coarse to fine.
type digits struct {
	lat1, lon1 int // Level1 row and column: floor(lat*1.5), floor(lon-100)
	t, u       int // Level2 row and column inside Level1, 0-7
	v, w       int // Level3 row and column inside Level2, 0-9
	sub        int // 1-based index of a Level4 or Level5 cell inside Level3
}

func (d digits) level1Origin() (lat, lon float64) {
	return float64(d.lat1) / 1.5, float64(d.lon1) + 100
}

func (d digits) level2Origin() (lat, lon float64) {
	lat, lon = d.level1Origin()
	return lat + float64(d.t)*Level2.LatSize(), lon + float64(d.u)*Level2.LonSize()
}

func (d digits) level3Origin() (lat, lon float64) {
	lat, lon = d.level2Origin()
	return lat + float64(d.v)*Level3.LatSize(), lon + float64(d.w)*Level3.LonSize()
}

// subdivision returns the row width of the grid a level cuts its Level3
// parent into. Level4Half is 2x2 but numbered by quadrant, not by row.
func subdivision(level Level) int {
	switch level {
	case Level4Half:
		return 2
	case Level4Quarter:
		return 4
	case Level4Eighth:
		return 8
	case Level5:
		return 10
	}
	return 1
}

// Quadrant numbering for Level4Half.
const (
	halfNE = 1
	halfSE = 2
	halfNW = 3
	halfSW = 4
)

// Encode returns the code of the cell containing c at the given level. c must
// lie inside the envelope; NewCoordinate guarantees that. Encode panics if
// level is not one of the seven defined levels.
//
// Each step floors the offset from the south-west corner of the enclosing
// cell by the finer step size. Corners are rebuilt from the digits already
// chosen with the same arithmetic Decode uses, so the two never disagree
// about where a cell starts.
func Encode(c Coordinate, level Level) Code {
	level.info()

	var d digits
	d.lat1 = clamp(int(math.Floor(c.lat*1.5)), 0, 99)
	d.lon1 = clamp(int(math.Floor(c.lon-100)), 0, 99)
	if level == Level1 {
		return Code{level: level, value: d.pack(level)}
	}

	lat, lon := d.level1Origin()
	d.t = bucket(c.lat-lat, Level2.LatSize(), 8)
	d.u = bucket(c.lon-lon, Level2.LonSize(), 8)
	if level == Level2 {
		return Code{level: level, value: d.pack(level)}
	}

	lat, lon = d.level2Origin()
	d.v = bucket(c.lat-lat, Level3.LatSize(), 10)
	d.w = bucket(c.lon-lon, Level3.LonSize(), 10)
	if level == Level3 {
		return Code{level: level, value: d.pack(level)}
	}

	lat, lon = d.level3Origin()
	dLat, dLon := c.lat-lat, c.lon-lon
	if level == Level4Half {
		d.sub = halfIndex(dLat/Level3.LatSize(), dLon/Level3.LonSize())
	} else {
		n := subdivision(level)
		row := bucket(dLat, level.LatSize(), n)
		col := bucket(dLon, level.LonSize(), n)
		d.sub = row*n + col + 1
	}
	return Code{level: level, value: d.pack(level)}
}

// halfIndex numbers the Level3 quadrants NE=1, SE=2, NW=3, SW=4 from the
// fractional position inside the Level3 cell.
func halfIndex(fracLat, fracLon float64) int {
	north, east := fracLat >= 0.5, fracLon >= 0.5
	switch {
	case north && east:
		return halfNE
	case east:
		return halfSE
	case north:
		return halfNW
	}
	return halfSW
}

func halfRowCol(index int) (row, col int) {
	switch index {
	case halfNE:
		return 1, 1
	case halfSE:
		return 0, 1
	case halfNW:
		return 1, 0
	}
	return 0, 0
}

// pack lays the digits out in decimal. The Level5 index runs 1-100 in a
// two-digit field, so 100 is written as 00.
func (d digits) pack(level Level) uint64 {
	v := uint64(d.lat1*100 + d.lon1)
	if level == Level1 {
		return v
	}
	v = v*100 + uint64(d.t*10+d.u)
	if level == Level2 {
		return v
	}
	v = v*100 + uint64(d.v*10+d.w)
	switch level {
	case Level4Half:
		return v*10 + uint64(d.sub)
	case Level4Quarter:
		return v*100 + uint64(d.sub)
	case Level4Eighth:
		return v*1000 + uint64(d.sub)
	case Level5:
		return v*100 + uint64(d.sub%100)
	}
	return v
}

func bucket(offset, step float64, n int) int {
	return clamp(int(math.Floor(offset/step)), 0, n-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
