package geo

import (
	"context"
	"sort"
	"sync"

	"meshcode/internal/domain/entities"
	"meshcode/internal/mesh"
	"meshcode/pkg/utils"
)

// SpatialIndex is an in-memory index answering "which tracked points are
// near here". Points are bucketed by the mesh code of the cell they fall in,
// so a proximity search only visits cells around the search center instead
// of every point.
//
// Go Learning Note — sync.RWMutex:
// RWMutex provides read-write locking. Multiple goroutines can hold a read lock
// simultaneously (RLock), but a write lock (Lock) is exclusive. The index is
// queried far more often than points move, so reads should not serialize.
//
// Go Learning Note — Struct Map Keys:
// mesh.Code is a comparable struct, so it can key a map directly. The level
// is part of the key, which keeps ten-digit Level4Quarter and Level5 codes
// with the same digits apart.
type SpatialIndex struct {
	mu     sync.RWMutex
	level  mesh.Level
	points map[mesh.Code]map[string]*entities.TrackedPoint // cell -> id -> point
	cellOf map[string]mesh.Code                            // id -> cell
}

// NewSpatialIndex creates an empty index bucketing points at level. It
// panics if level is not a defined mesh level.
func NewSpatialIndex(level mesh.Level) *SpatialIndex {
	if !level.Valid() {
		panic("geo: invalid index level " + level.String())
	}
	return &SpatialIndex{
		level:  level,
		points: make(map[mesh.Code]map[string]*entities.TrackedPoint),
		cellOf: make(map[string]mesh.Code),
	}
}

// Level is the mesh level points are bucketed at.
func (s *SpatialIndex) Level() mesh.Level { return s.level }

// UpdateLocation moves a point to c, creating it if needed, and returns the
// stored record.
//
// Go Learning Note — defer:
// `defer s.mu.Unlock()` schedules the unlock to run when the function returns,
// regardless of how it returns. This prevents forgetting to unlock on an early
// return.
func (s *SpatialIndex) UpdateLocation(id string, c mesh.Coordinate) *entities.TrackedPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := mesh.Encode(c, s.level)
	if old, ok := s.cellOf[id]; ok && old != code {
		s.removeLocked(id, old)
	}

	cell, ok := s.points[code]
	if !ok {
		cell = make(map[string]*entities.TrackedPoint)
		s.points[code] = cell
	}
	point := entities.NewTrackedPoint(id, c, code)
	cell[id] = point
	s.cellOf[id] = code
	return point
}

// Remove drops a point from the index. It reports whether the point was
// present.
func (s *SpatialIndex) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.cellOf[id]
	if !ok {
		return false
	}
	s.removeLocked(id, code)
	delete(s.cellOf, id)
	return true
}

func (s *SpatialIndex) removeLocked(id string, code mesh.Code) {
	cell := s.points[code]
	delete(cell, id)
	if len(cell) == 0 {
		delete(s.points, code)
	}
}

// Get returns the indexed point, or nil if the id is unknown.
func (s *SpatialIndex) Get(id string) *entities.TrackedPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.cellOf[id]
	if !ok {
		return nil
	}
	return s.points[code][id]
}

// FindNearby returns the points within radiusMeters of center, nearest
// first. A negative radius finds nothing.
//
// Strategy: Coarse filter → Fine filter
//  1. Coarse: pick the cells that can hold a point within the radius. When
//     the circle spans fewer cells than are occupied, enumerate them with the
//     mesh radius iterator; otherwise walk the occupied cells and keep those
//     whose centers are close enough.
//  2. Fine: compute the exact haversine distance of each candidate point.
//  3. Sort by distance, ties broken by id.
//
// Go Learning Note — sort.Slice:
// sort.Slice sorts a slice in-place using a provided less function. The less
// function takes two indices and returns true if element i should come before
// element j.
func (s *SpatialIndex) FindNearby(ctx context.Context, center mesh.Coordinate, radiusMeters float64) ([]entities.PointWithDistance, error) {
	if !(radiusMeters >= 0) {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var cells []mesh.Code
	if estimateCells(center, radiusMeters, s.level) < float64(len(s.points)) {
		cells = candidateCells(center, radiusMeters, s.level)
	} else {
		limit := radiusMeters + searchPadding(s.level)
		for code := range s.points {
			if mesh.HaversineDistance(center, code.Center()) <= limit {
				cells = append(cells, code)
			}
		}
	}

	var found []entities.PointWithDistance
	for i, code := range cells {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for _, p := range s.points[code] {
			d := utils.HaversineDistance(center.Lat(), center.Lon(), p.Location.Latitude, p.Location.Longitude)
			if d <= radiusMeters {
				found = append(found, entities.PointWithDistance{Point: p, Distance: d})
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Distance != found[j].Distance {
			return found[i].Distance < found[j].Distance
		}
		return found[i].Point.ID < found[j].Point.ID
	})
	return found, nil
}

// FindNearbyIDs is FindNearby reduced to ids, nearest first.
//
// Go Learning Note — make() with Length:
// make([]string, len(nearby)) creates a slice with both length and capacity set
// to len(nearby), so the loop can assign by index without append.
func (s *SpatialIndex) FindNearbyIDs(ctx context.Context, center mesh.Coordinate, radiusMeters float64) ([]string, error) {
	nearby, err := s.FindNearby(ctx, center, radiusMeters)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(nearby))
	for i, n := range nearby {
		ids[i] = n.Point.ID
	}
	return ids, nil
}

// Count returns the number of indexed points.
func (s *SpatialIndex) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cellOf)
}

// CellCount returns the number of occupied cells.
func (s *SpatialIndex) CellCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}
