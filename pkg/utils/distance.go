package utils

import (
	"math"
)

const (
	// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
	EarthRadiusMeters = 6371000.0

	// MetersPerDegreeLat is the length of one degree of latitude. It is close
	// enough to constant for radius-to-angle conversions at mesh scales.
	MetersPerDegreeLat = 111320.0
)

// HaversineDistance calculates the great-circle distance between two points
// in meters.
//
// Go Learning Note — math.Atan2 vs math.Asin:
// Both forms of the haversine formula are correct, but 2*atan2(√a, √(1-a))
// stays well conditioned when the points are nearly antipodal, where asin(√a)
// loses precision as a approaches 1.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// BBoxOffsets converts a radius in meters into the half-height and
// half-width, in degrees, of a box around a point at the given latitude.
// Longitude degrees shrink with cos(latitude), so the width grows to match.
func BBoxOffsets(lat, radiusMeters float64) (latOffset, lonOffset float64) {
	if radiusMeters <= 0 {
		return 0, 0
	}
	latOffset = radiusMeters / MetersPerDegreeLat
	lonOffset = radiusMeters / (MetersPerDegreeLat * math.Cos(toRadians(lat)))
	return latOffset, lonOffset
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
