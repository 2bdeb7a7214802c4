package services

import (
	"context"
	"errors"
	"fmt"

	"meshcode/internal/config"
	"meshcode/internal/domain/entities"
	"meshcode/internal/mesh"
	"meshcode/internal/metrics"
)

// MeshService is the request-facing wrapper around the mesh core. It parses
// string inputs, applies the configured limits on enumeration size and
// search radius, and records one metric per operation.
type MeshService struct {
	defaultLevel mesh.Level
	maxCells     int
	maxRadius    float64
	metrics      *metrics.Metrics
}

func NewMeshService(cfg *config.Config, m *metrics.Metrics) *MeshService {
	return &MeshService{
		defaultLevel: cfg.DefaultLevel(),
		maxCells:     cfg.Mesh.MaxCells,
		maxRadius:    cfg.Mesh.MaxRadiusMeters,
		metrics:      m,
	}
}

// NeighborCell is one entry of a neighbors response.
type NeighborCell struct {
	Direction string            `json:"direction"`
	Cell      entities.MeshCell `json:"cell"`
}

// Enumeration is the result of a bbox or radius search.
type Enumeration struct {
	Level string              `json:"level"`
	Count int                 `json:"count"`
	Cells []entities.MeshCell `json:"cells"`
}

// Level resolves a level name, falling back to the configured default for
// an empty string.
func (s *MeshService) Level(name string) (mesh.Level, error) {
	if name == "" {
		return s.defaultLevel, nil
	}
	return mesh.ParseLevel(name)
}

func (s *MeshService) Encode(lat, lon float64, levelName string) (cell entities.MeshCell, err error) {
	defer func() { s.metrics.ObserveOperation("encode", err) }()

	level, err := s.Level(levelName)
	if err != nil {
		return entities.MeshCell{}, err
	}
	c, err := mesh.NewCoordinate(lat, lon)
	if err != nil {
		return entities.MeshCell{}, err
	}
	return entities.NewMeshCell(mesh.Encode(c, level)), nil
}

func (s *MeshService) Describe(code string) (cell entities.MeshCell, err error) {
	defer func() { s.metrics.ObserveOperation("decode", err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return entities.MeshCell{}, err
	}
	return entities.NewMeshCell(c), nil
}

// Contains reports whether the point lies in the cell. Points outside the
// envelope are never contained; points outside the globe are rejected.
func (s *MeshService) Contains(code string, lat, lon float64) (ok bool, err error) {
	defer func() { s.metrics.ObserveOperation("contains", err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return false, err
	}
	p, err := mesh.NewCoordinate(lat, lon)
	if errors.Is(err, mesh.ErrOutOfRange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.Contains(p), nil
}

func (s *MeshService) Parent(code string) (cell entities.MeshCell, err error) {
	defer func() { s.metrics.ObserveOperation("parent", err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return entities.MeshCell{}, err
	}
	parent, ok := c.Parent()
	if !ok {
		return entities.MeshCell{}, ErrNoParent
	}
	return entities.NewMeshCell(parent), nil
}

func (s *MeshService) Children(code string) (cells []entities.MeshCell, err error) {
	defer func() { s.metrics.ObserveOperation("children", err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return nil, err
	}
	return entities.NewMeshCells(c.Children()), nil
}

func (s *MeshService) ToLevel(code, levelName string) (cell entities.MeshCell, err error) {
	defer func() { s.metrics.ObserveOperation("to_level", err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return entities.MeshCell{}, err
	}
	level, err := mesh.ParseLevel(levelName)
	if err != nil {
		return entities.MeshCell{}, err
	}
	projected, err := c.ToLevel(level)
	if err != nil {
		return entities.MeshCell{}, err
	}
	return entities.NewMeshCell(projected), nil
}

func (s *MeshService) Neighbor(code, direction string) (cell entities.MeshCell, err error) {
	defer func() { s.metrics.ObserveOperation("neighbor", err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return entities.MeshCell{}, err
	}
	d, err := mesh.ParseDirection(direction)
	if err != nil {
		return entities.MeshCell{}, err
	}
	n, ok := c.Neighbor(d)
	if !ok {
		return entities.MeshCell{}, fmt.Errorf("%w: %s of %s", ErrNoNeighbor, d, c)
	}
	return entities.NewMeshCell(n), nil
}

// Neighbors lists the neighbors clockwise from north, omitting directions
// that leave the envelope.
func (s *MeshService) Neighbors(code string) (out []NeighborCell, err error) {
	defer func() { s.metrics.ObserveOperation("neighbors", err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return nil, err
	}
	out = make([]NeighborCell, 0, 8)
	for _, d := range mesh.AllDirections() {
		if n, ok := c.Neighbor(d); ok {
			out = append(out, NeighborCell{Direction: d.String(), Cell: entities.NewMeshCell(n)})
		}
	}
	return out, nil
}

// SearchBBox enumerates the cells sampled across the box. Corners must be
// valid coordinates but may lie outside the envelope; an inverted box gives
// an empty result.
func (s *MeshService) SearchBBox(ctx context.Context, minLat, minLon, maxLat, maxLon float64, levelName string) (res Enumeration, err error) {
	defer func() { s.observeEnumeration("bbox", res, err) }()

	level, err := s.Level(levelName)
	if err != nil {
		return Enumeration{}, err
	}
	sw, err := globalCoordinate(minLat, minLon)
	if err != nil {
		return Enumeration{}, err
	}
	ne, err := globalCoordinate(maxLat, maxLon)
	if err != nil {
		return Enumeration{}, err
	}
	return s.enumerate(ctx, mesh.CodesInBBox(mesh.NewBoundingBox(sw, ne), level), level)
}

// SearchRadius enumerates the cells whose centers lie within meters of the
// point.
func (s *MeshService) SearchRadius(ctx context.Context, lat, lon, meters float64, levelName string) (res Enumeration, err error) {
	defer func() { s.observeEnumeration("radius", res, err) }()

	level, err := s.Level(levelName)
	if err != nil {
		return Enumeration{}, err
	}
	center, err := mesh.NewCoordinate(lat, lon)
	if err != nil {
		return Enumeration{}, err
	}
	if err := s.checkRadius(meters); err != nil {
		return Enumeration{}, err
	}
	return s.enumerate(ctx, mesh.CodesInRadius(center, meters, level), level)
}

// RadiusFromCode searches around the center of code at code's own level.
func (s *MeshService) RadiusFromCode(ctx context.Context, code string, meters float64) (res Enumeration, err error) {
	defer func() { s.observeEnumeration("radius_from_code", res, err) }()

	c, err := mesh.ParseCode(code)
	if err != nil {
		return Enumeration{}, err
	}
	if err := s.checkRadius(meters); err != nil {
		return Enumeration{}, err
	}
	return s.enumerate(ctx, mesh.CodesInRadiusOf(c, meters), c.Level())
}

// Distance is the haversine distance in meters between two valid
// coordinates. The envelope does not apply.
func (s *MeshService) Distance(lat1, lon1, lat2, lon2 float64) (d float64, err error) {
	defer func() { s.metrics.ObserveOperation("distance", err) }()

	a, err := globalCoordinate(lat1, lon1)
	if err != nil {
		return 0, err
	}
	b, err := globalCoordinate(lat2, lon2)
	if err != nil {
		return 0, err
	}
	return mesh.HaversineDistance(a, b), nil
}

func (s *MeshService) checkRadius(meters float64) error {
	if meters > s.maxRadius {
		return fmt.Errorf("%w: %.0f > %.0f meters", ErrRadiusTooLarge, meters, s.maxRadius)
	}
	return nil
}

// enumerate drains it up to the cell limit, checking ctx as it goes.
func (s *MeshService) enumerate(ctx context.Context, it mesh.Iterator, level mesh.Level) (Enumeration, error) {
	var codes []mesh.Code
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		if len(codes) == s.maxCells {
			return Enumeration{}, fmt.Errorf("%w of %d", ErrTooManyCells, s.maxCells)
		}
		if len(codes)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Enumeration{}, err
			}
		}
		codes = append(codes, c)
	}
	return Enumeration{
		Level: level.String(),
		Count: len(codes),
		Cells: entities.NewMeshCells(codes),
	}, nil
}

func (s *MeshService) observeEnumeration(op string, res Enumeration, err error) {
	s.metrics.ObserveOperation(op, err)
	if err == nil {
		s.metrics.ObserveCells(op, res.Count)
	}
}

// globalCoordinate accepts any point on the globe, inside the envelope or
// not.
func globalCoordinate(lat, lon float64) (mesh.Coordinate, error) {
	c, err := mesh.NewCoordinate(lat, lon)
	if errors.Is(err, mesh.ErrOutOfRange) {
		return mesh.UncheckedCoordinate(lat, lon), nil
	}
	return c, err
}
