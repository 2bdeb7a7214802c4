package repository

import (
	"context"

	"meshcode/internal/domain/entities"
	"meshcode/internal/mesh"
)

// PointRepository stores tracked points and answers cell membership queries.
// Get returns (nil, nil) for an unknown id.
type PointRepository interface {
	Upsert(ctx context.Context, point *entities.TrackedPoint) error
	Get(ctx context.Context, id string) (*entities.TrackedPoint, error)
	Delete(ctx context.Context, id string) error
	// ListInCell returns the points inside code. code may be at the level the
	// points were stored at or any ancestor level.
	ListInCell(ctx context.Context, code mesh.Code) ([]*entities.TrackedPoint, error)
	Count(ctx context.Context) (int, error)
	// Cells lists the occupied cells at the stored level.
	Cells(ctx context.Context) []mesh.Code
}
