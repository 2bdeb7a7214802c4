package services

import (
	"context"
	"fmt"
	"strings"

	"meshcode/internal/domain/entities"
	"meshcode/internal/geo"
	"meshcode/internal/mesh"
	"meshcode/internal/metrics"
	"meshcode/internal/repository"
	"meshcode/pkg/utils"
)

// PointIDPrefix prefixes ids generated for points created without one.
const PointIDPrefix = "pt"

// LocationService tracks identified points. Writes go to both the spatial
// index (proximity search) and the repository (lookup by id and by cell).
type LocationService struct {
	spatialIndex  *geo.SpatialIndex
	pointRepo     repository.PointRepository
	notifications *NotificationService
	metrics       *metrics.Metrics
	maxRadius     float64
	defaultRadius float64
}

func NewLocationService(
	spatialIndex *geo.SpatialIndex,
	pointRepo repository.PointRepository,
	notifications *NotificationService,
	m *metrics.Metrics,
	defaultRadius, maxRadius float64,
) *LocationService {
	return &LocationService{
		spatialIndex:  spatialIndex,
		pointRepo:     pointRepo,
		notifications: notifications,
		metrics:       m,
		maxRadius:     maxRadius,
		defaultRadius: defaultRadius,
	}
}

// DefaultSearchRadius is used by nearby searches that name no radius.
func (s *LocationService) DefaultSearchRadius() float64 { return s.defaultRadius }

// Track records the position of a point, creating it if needed. An empty
// id gets a generated one.
func (s *LocationService) Track(ctx context.Context, id string, lat, lon float64) (*entities.TrackedPoint, error) {
	if id == "" {
		id = utils.GenerateID(PointIDPrefix)
	}
	if len(id) > 128 || strings.Contains(id, "/") {
		return nil, ErrInvalidPointID
	}
	c, err := mesh.NewCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}

	previous, err := s.pointRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	point := s.spatialIndex.UpdateLocation(id, c)
	if err := s.pointRepo.Upsert(ctx, point); err != nil {
		return nil, err
	}
	s.metrics.SetIndexPoints(s.spatialIndex.Count())

	var from mesh.Code
	if previous != nil {
		from = previous.MeshCode
	}
	if from != point.MeshCode {
		s.notifications.NotifyCellEntered(id, from, point.MeshCode)
	}
	return point, nil
}

func (s *LocationService) Get(ctx context.Context, id string) (*entities.TrackedPoint, error) {
	point, err := s.pointRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	return point, nil
}

// Remove stops tracking a point.
func (s *LocationService) Remove(ctx context.Context, id string) error {
	point, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	s.spatialIndex.Remove(id)
	if err := s.pointRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.SetIndexPoints(s.spatialIndex.Count())
	s.notifications.NotifyPointRemoved(id, point.MeshCode)
	return nil
}

// FindNearby returns the points within meters of the coordinate, nearest
// first.
func (s *LocationService) FindNearby(ctx context.Context, lat, lon, meters float64) ([]entities.PointWithDistance, error) {
	c, err := mesh.NewCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}
	if meters > s.maxRadius {
		return nil, fmt.Errorf("%w: %.0f > %.0f meters", ErrRadiusTooLarge, meters, s.maxRadius)
	}
	return s.spatialIndex.FindNearby(ctx, c, meters)
}

// InCell returns the points inside the cell named by code, which may be at
// the index level or any coarser ancestor level.
func (s *LocationService) InCell(ctx context.Context, code string) ([]*entities.TrackedPoint, error) {
	c, err := mesh.ParseCode(code)
	if err != nil {
		return nil, err
	}
	indexLevel := s.spatialIndex.Level()
	c = sameLengthAs(c, indexLevel)
	if c.Level() != indexLevel && !c.Level().IsAncestorOf(indexLevel) {
		return nil, fmt.Errorf("%w: points are indexed at %s, got a %s code",
			mesh.ErrUnsupportedRefinement, indexLevel, c.Level())
	}
	return s.pointRepo.ListInCell(ctx, c)
}

// OccupiedCells describes every cell holding at least one point, at the
// index level.
func (s *LocationService) OccupiedCells(ctx context.Context) ([]entities.MeshCell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entities.NewMeshCells(s.pointRepo.Cells(ctx)), nil
}

// sameLengthAs reads c at level when both are ten-digit levels. Parsing
// guesses between Level4Quarter and Level5 from the ninth digit, which is
// wrong for Level5 indexes 10-49 and Level4Quarter indexes 1-9; the index
// level settles it.
func sameLengthAs(c mesh.Code, level mesh.Level) mesh.Code {
	if c.Level() == level || c.Level().Digits() != level.Digits() {
		return c
	}
	if alias, err := mesh.NewCode(level, c.Value()); err == nil {
		return alias
	}
	return c
}
