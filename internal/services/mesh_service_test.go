package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshcode/internal/config"
	"meshcode/internal/mesh"
	"meshcode/internal/metrics"
)

func setupMeshService(t *testing.T, mutate func(*config.Config)) (*MeshService, *metrics.Metrics) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())
	m := metrics.New()
	return NewMeshService(cfg, m), m
}

func TestMeshService_Encode(t *testing.T) {
	service, m := setupMeshService(t, nil)

	cell, err := service.Encode(35.6812, 139.7671, "")
	require.NoError(t, err)
	assert.Equal(t, "53394611", cell.Code.String())
	assert.Equal(t, "third", cell.Level)

	cell, err = service.Encode(35.6812, 139.7671, "5")
	require.NoError(t, err)
	assert.Equal(t, "5339461174", cell.Code.String())

	_, err = service.Encode(35.6812, 139.7671, "sixth")
	assert.ErrorIs(t, err, mesh.ErrUnknownLevel)
	_, err = service.Encode(10, 139, "")
	assert.ErrorIs(t, err, mesh.ErrOutOfRange)

	count, err := testutil.GatherAndCount(m.Registry(), "meshcode_mesh_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome")
}

func TestMeshService_Navigation(t *testing.T) {
	service, _ := setupMeshService(t, nil)

	parent, err := service.Parent("53394611")
	require.NoError(t, err)
	assert.Equal(t, "533946", parent.Code.String())

	_, err = service.Parent("5339")
	assert.ErrorIs(t, err, ErrNoParent)

	children, err := service.Children("533946")
	require.NoError(t, err)
	assert.Len(t, children, 100)

	projected, err := service.ToLevel("5339461174", "first")
	require.NoError(t, err)
	assert.Equal(t, "5339", projected.Code.String())

	_, err = service.ToLevel("5339", "third")
	assert.ErrorIs(t, err, mesh.ErrUnsupportedRefinement)

	_, err = service.Children("53x")
	assert.ErrorIs(t, err, mesh.ErrInvalidDigit)
}

func TestMeshService_Neighbors(t *testing.T) {
	service, _ := setupMeshService(t, nil)

	east, err := service.Neighbor("53394611", "e")
	require.NoError(t, err)
	assert.Equal(t, "53394612", east.Code.String())

	_, err = service.Neighbor("6840", "north")
	assert.ErrorIs(t, err, ErrNoNeighbor)

	_, err = service.Neighbor("6840", "up")
	assert.ErrorIs(t, err, mesh.ErrUnknownDirection)

	all, err := service.Neighbors("6840")
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "east", all[0].Direction)
}

func TestMeshService_Contains(t *testing.T) {
	service, _ := setupMeshService(t, nil)

	ok, err := service.Contains("53394611", 35.6812, 139.7671)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Contains("53394611", 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = service.Contains("53394611", 95, 0)
	assert.ErrorIs(t, err, mesh.ErrInvalidLatitude)
}

func TestMeshService_SearchBBox(t *testing.T) {
	service, _ := setupMeshService(t, nil)
	ctx := context.Background()

	res, err := service.SearchBBox(ctx, 35.60, 139.60, 35.70, 139.80, "third")
	require.NoError(t, err)
	assert.Equal(t, "third", res.Level)
	assert.Equal(t, len(res.Cells), res.Count)
	assert.Greater(t, res.Count, 100)

	res, err = service.SearchBBox(ctx, 36, 140, 35, 139, "")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.NotNil(t, res.Cells)

	_, err = service.SearchBBox(ctx, -95, 139, 35, 140, "")
	assert.ErrorIs(t, err, mesh.ErrInvalidLatitude)
}

func TestMeshService_SearchBBoxOutsideEnvelope(t *testing.T) {
	service, _ := setupMeshService(t, nil)

	res, err := service.SearchBBox(context.Background(), -90, -180, 19, 180, "fifth")
	require.NoError(t, err)
	assert.Zero(t, res.Count)

	// Straddling the south-west corner keeps only the cells inside.
	res, err = service.SearchBBox(context.Background(), 19.5, 121.5, 20.2, 122.3, "second")
	require.NoError(t, err)
	require.NotZero(t, res.Count)
	for _, cell := range res.Cells {
		assert.GreaterOrEqual(t, cell.Bounds.NorthEast.Latitude, mesh.MinLat, cell.Code.String())
		assert.GreaterOrEqual(t, cell.Bounds.NorthEast.Longitude, mesh.MinLon, cell.Code.String())
	}
}

func TestMeshService_CellLimit(t *testing.T) {
	service, _ := setupMeshService(t, func(c *config.Config) { c.Mesh.MaxCells = 10 })
	ctx := context.Background()

	_, err := service.SearchBBox(ctx, 35.60, 139.60, 35.70, 139.80, "third")
	assert.ErrorIs(t, err, ErrTooManyCells)

	res, err := service.RadiusFromCode(ctx, "53394611", 1000)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Count, 10)
}

func TestMeshService_SearchRadius(t *testing.T) {
	service, _ := setupMeshService(t, func(c *config.Config) { c.Mesh.MaxRadiusMeters = 5000 })
	ctx := context.Background()

	res, err := service.SearchRadius(ctx, 35.6812, 139.7671, 0, "third")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "53394611", res.Cells[0].Code.String())

	res, err = service.SearchRadius(ctx, 35.6812, 139.7671, -100, "")
	require.NoError(t, err)
	assert.Zero(t, res.Count)

	_, err = service.SearchRadius(ctx, 35.6812, 139.7671, 6000, "")
	assert.ErrorIs(t, err, ErrRadiusTooLarge)

	_, err = service.RadiusFromCode(ctx, "53394611", 6000)
	assert.ErrorIs(t, err, ErrRadiusTooLarge)
}

func TestMeshService_SearchCancelled(t *testing.T) {
	service, _ := setupMeshService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.SearchRadius(ctx, 35.6812, 139.7671, 1000, "third")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeshService_Distance(t *testing.T) {
	service, _ := setupMeshService(t, nil)

	d, err := service.Distance(35.6812, 139.7671, 35.4437, 139.6380)
	require.NoError(t, err)
	assert.InDelta(t, 28900, d, 600)

	// The envelope does not apply to distances.
	d, err = service.Distance(0, 0, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 111195, d, 5)

	_, err = service.Distance(0, 200, 0, 0)
	assert.ErrorIs(t, err, mesh.ErrInvalidLongitude)
}
