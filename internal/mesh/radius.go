package mesh

import (
	"math"

	"meshcode/pkg/utils"
)

// HaversineDistance is the great-circle distance between a and b in meters.
func HaversineDistance(a, b Coordinate) float64 {
	return utils.HaversineDistance(a.lat, a.lon, b.lat, b.lon)
}

type radiusMode uint8

const (
	radiusEmpty radiusMode = iota
	radiusSingle
	radiusSweep
)

// RadiusIterator yields the codes whose cell centers lie within a radius of
// a point. It sweeps the bounding box of the circle, clamped to the
// envelope, and filters each candidate by haversine distance.
//
// A negative radius yields nothing. A zero radius yields exactly one code,
// the cell containing the center, without sweeping.
type RadiusIterator struct {
	center  Coordinate
	radius  float64
	level   Level
	mode    radiusMode
	sweep   *BBoxIterator
	origin  Code // yielded first and skipped by the sweep; zero if none
	emitted bool
}

// NewRadiusIterator returns an iterator over the cells of the given level
// within radiusMeters of center. It panics if level is not one of the seven
// defined levels.
func NewRadiusIterator(center Coordinate, radiusMeters float64, level Level) *RadiusIterator {
	level.info()
	it := &RadiusIterator{center: center, radius: radiusMeters, level: level}

	switch {
	case radiusMeters < 0 || math.IsNaN(radiusMeters):
		it.mode = radiusEmpty
	case radiusMeters == 0:
		it.mode = radiusSingle
	default:
		it.mode = radiusSweep
		latOff, lonOff := utils.BBoxOffsets(center.lat, radiusMeters)
		sw := UncheckedCoordinate(
			math.Max(center.lat-latOff, MinLat),
			math.Max(center.lon-lonOff, MinLon),
		)
		ne := UncheckedCoordinate(
			math.Min(center.lat+latOff, MaxLat),
			math.Min(center.lon+lonOff, MaxLon),
		)
		it.sweep = NewBBoxIterator(NewBoundingBox(sw, ne), level)
	}
	return it
}

// CodesInRadius is NewRadiusIterator under the name of the operation it
// serves.
func CodesInRadius(center Coordinate, radiusMeters float64, level Level) *RadiusIterator {
	return NewRadiusIterator(center, radiusMeters, level)
}

// CodesInRadiusOf searches around the center of c at c's own level. For a
// non-negative radius c itself comes first, whether or not a raster sample
// lands in it.
func CodesInRadiusOf(c Code, radiusMeters float64) *RadiusIterator {
	it := NewRadiusIterator(c.Center(), radiusMeters, c.level)
	if it.mode != radiusEmpty {
		it.origin = c
	}
	return it
}

func (it *RadiusIterator) Next() (Code, bool) {
	switch it.mode {
	case radiusSingle:
		if it.emitted {
			return Code{}, false
		}
		it.emitted = true
		if !it.origin.IsZero() {
			return it.origin, true
		}
		return Encode(it.center, it.level), true
	case radiusSweep:
		if !it.emitted && !it.origin.IsZero() {
			it.emitted = true
			return it.origin, true
		}
		for {
			c, ok := it.sweep.Next()
			if !ok {
				return Code{}, false
			}
			if c == it.origin {
				continue
			}
			if HaversineDistance(it.center, c.Center()) <= it.radius {
				return c, true
			}
		}
	}
	return Code{}, false
}

func (it *RadiusIterator) Reset() {
	it.emitted = false
	if it.sweep != nil {
		it.sweep.Reset()
	}
}

// Level is the level of every code the iterator yields.
func (it *RadiusIterator) Level() Level { return it.level }
