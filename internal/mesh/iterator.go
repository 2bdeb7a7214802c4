package mesh

import "math"

// Iterator is a lazy, restartable sequence of codes.
type Iterator interface {
	// Next returns the next code, or false once the sequence is exhausted.
	Next() (Code, bool)
	// Reset rewinds the sequence to its first element.
	Reset()
}

// BBoxIterator walks a raster of sample points across a bounding box, one
// cell step apart, and yields the code of the cell under each point. Rows go
// south to north, and each row west to east; both edges of the box are
// inclusive. Sample points outside the envelope are skipped, and the sweep
// starts at the first row and column that can reach the envelope, so a box
// far outside it is exhausted without visiting its samples one by one.
//
// The cursor is the pair (row, col). Positions are computed as
// min + index*step rather than by repeated addition, so the sweep does not
// drift and Reset replays it exactly.
//
// A BBoxIterator is owned by a single consumer; it is not safe for
// concurrent use.
type BBoxIterator struct {
	box      BoundingBox
	level    Level
	latStep  float64
	lonStep  float64
	maxLat   float64 // box edge clipped to the envelope
	maxLon   float64
	rowStart int
	colStart int
	row      int
	col      int
	done     bool
}

// NewBBoxIterator returns an iterator over the cells sampled in box. An
// inverted box, or one with NaN corners, yields nothing. It panics if level
// is not one of the seven defined levels.
func NewBBoxIterator(box BoundingBox, level Level) *BBoxIterator {
	it := &BBoxIterator{
		box:     box,
		level:   level,
		latStep: level.LatSize(),
		lonStep: level.LonSize(),
		maxLat:  math.Min(box.MaxLat(), MaxLat),
		maxLon:  math.Min(box.MaxLon(), MaxLon),
	}
	it.rowStart = firstIndex(box.MinLat(), MinLat, it.latStep)
	it.colStart = firstIndex(box.MinLon(), MinLon, it.lonStep)
	it.Reset()
	return it
}

// CodesInBBox is NewBBoxIterator under the name of the operation it serves.
// A box that crosses the envelope edge yields only the cells sampled inside
// the envelope, so it returns fewer cells than its area suggests.
func CodesInBBox(box BoundingBox, level Level) *BBoxIterator {
	return NewBBoxIterator(box, level)
}

func (it *BBoxIterator) Reset() {
	it.row, it.col = it.rowStart, it.colStart
	it.done = hasNaN(it.box.MinLat(), it.box.MaxLat(), it.box.MinLon(), it.box.MaxLon())
}

func (it *BBoxIterator) Next() (Code, bool) {
	for !it.done {
		lat := it.box.MinLat() + float64(it.row)*it.latStep
		if lat > it.maxLat {
			it.done = true
			break
		}
		lon := it.box.MinLon() + float64(it.col)*it.lonStep
		if lon > it.maxLon {
			it.row++
			it.col = it.colStart
			continue
		}
		it.col++
		if !InEnvelope(lat, lon) {
			continue
		}
		return Encode(UncheckedCoordinate(lat, lon), it.level), true
	}
	return Code{}, false
}

// Level is the level of every code the iterator yields.
func (it *BBoxIterator) Level() Level { return it.level }

// Collect drains it into a slice, stopping after limit codes when limit is
// positive. The second result reports whether codes remained when the limit
// cut the drain short.
func Collect(it Iterator, limit int) ([]Code, bool) {
	var out []Code
	for {
		c, ok := it.Next()
		if !ok {
			return out, false
		}
		if limit > 0 && len(out) == limit {
			return out, true
		}
		out = append(out, c)
	}
}

// firstIndex is the index of the last sample before bound on the raster
// min + i*step, or 0 when min already reaches bound. Starting one sample
// early keeps a sample lying exactly on bound despite rounding; the envelope
// check in Next drops the extra one.
func firstIndex(min, bound, step float64) int {
	if !(min < bound) {
		return 0
	}
	i := int(math.Ceil((bound-min)/step)) - 1
	if i < 0 {
		return 0
	}
	return i
}

func hasNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
