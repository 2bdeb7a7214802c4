package entities

import (
	"time"

	"meshcode/internal/mesh"
)

// Location is a latitude/longitude pair as it appears on the wire.
//
// Go Learning Note — Value Types vs Reference Types:
// Location is a small, immutable data holder. NewLocation returns it by value
// (not a pointer), which is idiomatic for small structs. By contrast,
// TrackedPoint is returned as a pointer because the index and repository
// share the same record.
//
// Go Learning Note — Custom JSON Field Names:
// The struct tag `json:"lat"` makes this field serialize as "lat" instead of
// "Latitude" in JSON.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

func NewLocation(lat, lon float64) Location {
	return Location{Latitude: lat, Longitude: lon}
}

// LocationOf converts a core coordinate into its wire form.
func LocationOf(c mesh.Coordinate) Location {
	return Location{Latitude: c.Lat(), Longitude: c.Lon()}
}

// Coordinate validates the location against the mesh envelope.
func (l Location) Coordinate() (mesh.Coordinate, error) {
	return mesh.NewCoordinate(l.Latitude, l.Longitude)
}

// TrackedPoint is an identified position together with the mesh cell it
// falls in at the index level. MeshCode is recomputed on every move.
type TrackedPoint struct {
	ID        string    `json:"id"`
	Location  Location  `json:"location"`
	MeshCode  mesh.Code `json:"mesh_code"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTrackedPoint stamps the point with the current time. The code should be
// pre-computed by the geo package.
func NewTrackedPoint(id string, c mesh.Coordinate, code mesh.Code) *TrackedPoint {
	return &TrackedPoint{
		ID:        id,
		Location:  LocationOf(c),
		MeshCode:  code,
		UpdatedAt: time.Now(),
	}
}

// PointWithDistance pairs a tracked point with its distance in meters from a
// search center.
type PointWithDistance struct {
	Point    *TrackedPoint `json:"point"`
	Distance float64       `json:"distance_meters"`
}
