package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"meshcode/internal/domain/entities"
	"meshcode/internal/mesh"
)

// PointRepository stores tracked points with a secondary mesh-code index for
// cell queries. It maintains two data structures:
//   - points: id → TrackedPoint (primary lookup)
//   - cellIndex: mesh code → id → TrackedPoint (cell lookup)
//
// Both indices must be kept in sync on every write.
type PointRepository struct {
	mu        sync.RWMutex
	points    map[string]*entities.TrackedPoint
	cellIndex map[mesh.Code]map[string]*entities.TrackedPoint
}

func NewPointRepository() *PointRepository {
	return &PointRepository{
		points:    make(map[string]*entities.TrackedPoint),
		cellIndex: make(map[mesh.Code]map[string]*entities.TrackedPoint),
	}
}

// Upsert stores a point. If it moved to a different cell the old cell entry
// is dropped first.
func (r *PointRepository) Upsert(ctx context.Context, point *entities.TrackedPoint) error {
	if point.MeshCode.IsZero() {
		return fmt.Errorf("point %q has no mesh code", point.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.points[point.ID]; exists && old.MeshCode != point.MeshCode {
		r.unindexLocked(old)
	}

	r.points[point.ID] = point

	cell, exists := r.cellIndex[point.MeshCode]
	if !exists {
		cell = make(map[string]*entities.TrackedPoint)
		r.cellIndex[point.MeshCode] = cell
	}
	cell[point.ID] = point
	return nil
}

func (r *PointRepository) unindexLocked(point *entities.TrackedPoint) {
	if cell, ok := r.cellIndex[point.MeshCode]; ok {
		delete(cell, point.ID)
		if len(cell) == 0 {
			delete(r.cellIndex, point.MeshCode)
		}
	}
}

func (r *PointRepository) Get(ctx context.Context, id string) (*entities.TrackedPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	point, exists := r.points[id]
	if !exists {
		return nil, nil
	}
	return point, nil
}

// Delete removes a point from both indices. Unknown ids are ignored.
func (r *PointRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	point, exists := r.points[id]
	if !exists {
		return nil
	}
	r.unindexLocked(point)
	delete(r.points, id)
	return nil
}

// ListInCell returns the points in code, sorted by id. A code at the stored
// level is one map lookup; an ancestor code is answered by projecting each
// occupied cell onto the ancestor's level.
func (r *PointRepository) ListInCell(ctx context.Context, code mesh.Code) ([]*entities.TrackedPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.TrackedPoint
	if cell, ok := r.cellIndex[code]; ok {
		for _, p := range cell {
			out = append(out, p)
		}
	} else {
		for stored, cell := range r.cellIndex {
			if !code.Level().IsAncestorOf(stored.Level()) {
				continue
			}
			projected, err := stored.ToLevel(code.Level())
			if err != nil || projected != code {
				continue
			}
			for _, p := range cell {
				out = append(out, p)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PointRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.points), nil
}

// Cells returns the occupied mesh codes in ascending code order.
//
// Go Learning Note — make() with Length 0 and Capacity:
// make([]mesh.Code, 0, len(r.cellIndex)) creates a slice with length 0 but
// pre-allocated capacity, so append never has to grow it.
func (r *PointRepository) Cells(ctx context.Context) []mesh.Code {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cells := make([]mesh.Code, 0, len(r.cellIndex))
	for code := range r.cellIndex {
		cells = append(cells, code)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Value() < cells[j].Value() })
	return cells
}
