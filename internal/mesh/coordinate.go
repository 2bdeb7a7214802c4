package mesh

import "fmt"

// Envelope of coordinates the mesh system accepts.
const (
	MinLat = 20.0
	MaxLat = 46.0
	MinLon = 122.0
	MaxLon = 154.0
)

// Coordinate is a latitude/longitude pair in degrees. Values built with
// NewCoordinate lie inside the envelope; UncheckedCoordinate skips the check
// for points derived from existing cells.
type Coordinate struct {
	lat float64
	lon float64
}

// NewCoordinate validates lat and lon against the global ranges and then the
// mesh envelope.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if !(lat >= -90 && lat <= 90) {
		return Coordinate{}, fmt.Errorf("%w: got %v", ErrInvalidLatitude, lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return Coordinate{}, fmt.Errorf("%w: got %v", ErrInvalidLongitude, lon)
	}
	if !InEnvelope(lat, lon) {
		return Coordinate{}, fmt.Errorf("%w: got (%v, %v)", ErrOutOfRange, lat, lon)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// UncheckedCoordinate builds a Coordinate without validation. The result may
// fall outside the envelope.
func UncheckedCoordinate(lat, lon float64) Coordinate {
	return Coordinate{lat: lat, lon: lon}
}

// InEnvelope reports whether the point lies inside the supported envelope,
// edges included.
func InEnvelope(lat, lon float64) bool {
	return lat >= MinLat && lat <= MaxLat && lon >= MinLon && lon <= MaxLon
}

func (c Coordinate) Lat() float64 { return c.lat }
func (c Coordinate) Lon() float64 { return c.lon }

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.lat, c.lon)
}
