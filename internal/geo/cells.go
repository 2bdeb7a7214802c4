// Package geo keeps tracked points bucketed by mesh cell so proximity
// queries only look at cells near the search center.
//
// The index works at one mesh level chosen at construction. Coarse levels
// keep few, crowded buckets; fine levels keep many sparse ones:
//
//	Level2        ~10 km    good for sparse fleets
//	Level3        ~1 km     default
//	Level4Half    ~500 m
//	Level5        ~100 m    dense urban tracking
package geo

import (
	"math"

	"meshcode/internal/mesh"
	"meshcode/pkg/utils"
)

// searchPadding is the distance added to a search radius before choosing
// candidate cells. A point within the radius lies in a cell whose center is
// within radius + padding, and the padded sweep box reaches at least one cell
// beyond the circle so the raster never skips that cell.
func searchPadding(level mesh.Level) float64 {
	return (level.LatSize() + level.LonSize()) * utils.MetersPerDegreeLat
}

// candidateCells returns the codes at level whose centers lie within
// radiusMeters plus padding of center.
func candidateCells(center mesh.Coordinate, radiusMeters float64, level mesh.Level) []mesh.Code {
	codes, _ := mesh.Collect(mesh.CodesInRadius(center, radiusMeters+searchPadding(level), level), 0)
	return codes
}

// estimateCells approximates how many cells candidateCells would sweep,
// without enumerating them.
func estimateCells(center mesh.Coordinate, radiusMeters float64, level mesh.Level) float64 {
	latOff, lonOff := utils.BBoxOffsets(center.Lat(), radiusMeters+searchPadding(level))
	rows := math.Floor(2*latOff/level.LatSize()) + 1
	cols := math.Floor(2*lonOff/level.LonSize()) + 1
	return rows * cols
}
