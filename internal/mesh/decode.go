package mesh

// unpack splits a code into its digit groups. Suffix indices are taken as
// written; a parsed code may carry values Encode never produces (a quarter
// index of 20, say) and still decodes to some rectangle.
func unpack(c Code) digits {
	var d digits
	v := c.value
	switch c.level {
	case Level1:
		v *= 10000
	case Level2:
		v *= 100
	case Level4Half:
		d.sub = int(v % 10)
		v /= 10
	case Level4Quarter:
		d.sub = int(v % 100)
		v /= 100
	case Level4Eighth:
		d.sub = int(v % 1000)
		v /= 1000
	case Level5:
		d.sub = int(v % 100)
		if d.sub == 0 {
			d.sub = 100
		}
		v /= 100
	}
	d.w = int(v % 10)
	d.v = int(v / 10 % 10)
	d.u = int(v / 100 % 10)
	d.t = int(v / 1000 % 10)
	d.lon1 = int(v / 10000 % 100)
	d.lat1 = int(v / 1000000)
	return d
}

func (d digits) southWest(level Level) (lat, lon float64) {
	switch level {
	case Level1:
		return d.level1Origin()
	case Level2:
		return d.level2Origin()
	case Level3:
		return d.level3Origin()
	}

	lat, lon = d.level3Origin()
	var row, col int
	if level == Level4Half {
		row, col = halfRowCol(d.sub)
	} else {
		n := subdivision(level)
		row, col = (d.sub-1)/n, (d.sub-1)%n
	}
	return lat + float64(row)*level.LatSize(), lon + float64(col)*level.LonSize()
}

// Decode returns the rectangle covered by c. It panics on the zero Code.
func Decode(c Code) BoundingBox {
	level := c.level
	lat, lon := unpack(c).southWest(level)
	return NewBoundingBox(
		UncheckedCoordinate(lat, lon),
		UncheckedCoordinate(lat+level.LatSize(), lon+level.LonSize()),
	)
}

// Bounds is Decode(c).
func (c Code) Bounds() BoundingBox { return Decode(c) }

// Center is the midpoint of the cell.
func (c Code) Center() Coordinate { return Decode(c).Center() }

// Contains reports whether p falls inside the cell, edges included.
func (c Code) Contains(p Coordinate) bool { return Decode(c).Contains(p) }
