package geo

import (
	"context"
	"fmt"
	"math"
	"testing"

	"meshcode/internal/mesh"
)

func coord(t testing.TB, lat, lon float64) mesh.Coordinate {
	t.Helper()
	c, err := mesh.NewCoordinate(lat, lon)
	if err != nil {
		t.Fatalf("NewCoordinate(%v, %v): %v", lat, lon, err)
	}
	return c
}

func TestSpatialIndex_UpdateLocation(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)

	p := index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))

	if p.ID != "bus-1" {
		t.Errorf("Expected bus-1, got %s", p.ID)
	}
	if p.Location.Latitude != 35.6812 {
		t.Errorf("Expected lat 35.6812, got %f", p.Location.Latitude)
	}
	if p.Location.Longitude != 139.7671 {
		t.Errorf("Expected lon 139.7671, got %f", p.Location.Longitude)
	}
	if p.MeshCode.String() != "53394611" {
		t.Errorf("Expected mesh code 53394611, got %s", p.MeshCode)
	}
}

func TestSpatialIndex_Remove(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)
	index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))

	if index.Count() != 1 {
		t.Errorf("Expected count 1, got %d", index.Count())
	}
	if !index.Remove("bus-1") {
		t.Error("Expected Remove to report an existing point")
	}
	if index.Remove("bus-1") {
		t.Error("Expected second Remove to report nothing removed")
	}
	if index.Count() != 0 || index.CellCount() != 0 {
		t.Errorf("Expected empty index, got %d points in %d cells", index.Count(), index.CellCount())
	}
	if index.Get("bus-1") != nil {
		t.Error("Expected nil point after removal")
	}
}

func TestSpatialIndex_Get(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)

	if index.Get("missing") != nil {
		t.Error("Expected nil for unknown id")
	}

	index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))
	p := index.Get("bus-1")
	if p == nil {
		t.Fatal("Expected point for bus-1")
	}
	if p.ID != "bus-1" {
		t.Errorf("Expected bus-1, got %s", p.ID)
	}
}

func TestSpatialIndex_FindNearby(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)
	ctx := context.Background()
	center := coord(t, 35.6812, 139.7671) // Tokyo Station

	index.UpdateLocation("p-same", coord(t, 35.6812, 139.7671))
	index.UpdateLocation("p-500m", coord(t, 35.6857, 139.7671))
	index.UpdateLocation("p-1200m", coord(t, 35.6812, 139.7804))
	index.UpdateLocation("p-yokohama", coord(t, 35.4437, 139.6380))

	nearby, err := index.FindNearby(ctx, center, 2000)
	if err != nil {
		t.Fatalf("FindNearby: %v", err)
	}

	want := []string{"p-same", "p-500m", "p-1200m"}
	if len(nearby) != len(want) {
		t.Fatalf("Expected %d nearby points, got %d", len(want), len(nearby))
	}
	for i, id := range want {
		if nearby[i].Point.ID != id {
			t.Errorf("Expected %s at position %d, got %s", id, i, nearby[i].Point.ID)
		}
		if nearby[i].Distance > 2000 {
			t.Errorf("Expected %s within 2000m, got %.1f", id, nearby[i].Distance)
		}
	}
}

// Points just inside the radius but in cells whose centers lie outside it
// must still be found. The far-away points make the index crowded enough
// that the search enumerates candidate cells instead of walking occupied
// ones.
func TestSpatialIndex_FindNearbyAcrossCellEdges(t *testing.T) {
	ctx := context.Background()
	center := coord(t, 35.6812, 139.7671)
	const radius = 800.0

	for _, level := range []mesh.Level{mesh.Level2, mesh.Level3, mesh.Level4Half, mesh.Level5} {
		t.Run(level.String(), func(t *testing.T) {
			index := NewSpatialIndex(level)
			for i := 0; i < 600; i++ {
				lat := 30 + float64(i/30)*0.05
				lon := 130 + float64(i%30)*0.05
				index.UpdateLocation(fmt.Sprintf("far-%d", i), coord(t, lat, lon))
			}

			var inside int
			for deg := 0; deg < 360; deg += 10 {
				angle := float64(deg) * math.Pi / 180
				for _, frac := range []float64{0.2, 0.6, 0.99, 1.02} {
					dLat := frac * radius / 111320 * math.Cos(angle)
					dLon := frac * radius / 90400 * math.Sin(angle)
					p := coord(t, center.Lat()+dLat, center.Lon()+dLon)
					index.UpdateLocation(fmt.Sprintf("p-%d-%v", deg, frac), p)
					if mesh.HaversineDistance(center, p) <= radius {
						inside++
					}
				}
			}

			nearby, err := index.FindNearby(ctx, center, radius)
			if err != nil {
				t.Fatalf("FindNearby: %v", err)
			}
			if len(nearby) != inside {
				t.Errorf("Expected %d points within %.0fm, got %d", inside, radius, len(nearby))
			}
		})
	}
}

func TestSpatialIndex_FindNearbyNegativeRadius(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)
	index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))

	nearby, err := index.FindNearby(context.Background(), coord(t, 35.6812, 139.7671), -1)
	if err != nil {
		t.Fatalf("FindNearby: %v", err)
	}
	if len(nearby) != 0 {
		t.Errorf("Expected no results, got %d", len(nearby))
	}
}

func TestSpatialIndex_FindNearbyCancelled(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)
	index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := index.FindNearby(ctx, coord(t, 35.6812, 139.7671), 1000); err == nil {
		t.Error("Expected error from cancelled context")
	}
}

func TestSpatialIndex_FindNearbyIDs(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)
	ctx := context.Background()

	index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))
	index.UpdateLocation("bus-2", coord(t, 35.6822, 139.7681))

	ids, err := index.FindNearbyIDs(ctx, coord(t, 35.6812, 139.7671), 5000)
	if err != nil {
		t.Fatalf("FindNearbyIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 ids, got %d", len(ids))
	}
	if ids[0] != "bus-1" {
		t.Errorf("Expected bus-1 first, got %s", ids[0])
	}
}

func TestSpatialIndex_UpdateLocationMovesPoint(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)

	index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))
	oldCode := index.Get("bus-1").MeshCode

	index.UpdateLocation("bus-1", coord(t, 34.7025, 135.4959)) // Osaka
	newCode := index.Get("bus-1").MeshCode

	if oldCode == newCode {
		t.Error("Mesh code should change when the point moves to another cell")
	}
	if index.Count() != 1 {
		t.Errorf("Expected count 1, got %d", index.Count())
	}
	if index.CellCount() != 1 {
		t.Errorf("Expected the old cell to be dropped, got %d cells", index.CellCount())
	}
}

func TestSpatialIndex_Count(t *testing.T) {
	index := NewSpatialIndex(mesh.Level3)

	if index.Count() != 0 {
		t.Errorf("Expected count 0, got %d", index.Count())
	}

	index.UpdateLocation("bus-1", coord(t, 35.6812, 139.7671))
	index.UpdateLocation("bus-2", coord(t, 35.6822, 139.7681))
	index.UpdateLocation("bus-3", coord(t, 35.6832, 139.7691))

	if index.Count() != 3 {
		t.Errorf("Expected count 3, got %d", index.Count())
	}

	index.Remove("bus-2")

	if index.Count() != 2 {
		t.Errorf("Expected count 2, got %d", index.Count())
	}
}

func TestNewSpatialIndex_PanicsOnInvalidLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for level 0")
		}
	}()
	NewSpatialIndex(mesh.Level(0))
}

func BenchmarkFindNearby(b *testing.B) {
	index := NewSpatialIndex(mesh.Level3)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		lat := 35.5 + float64(i%100)*0.005
		lon := 139.5 + float64(i/100)*0.05
		index.UpdateLocation(fmt.Sprintf("p-%d", i), coord(b, lat, lon))
	}

	center := coord(b, 35.7, 139.7)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := index.FindNearby(ctx, center, 5000); err != nil {
			b.Fatal(err)
		}
	}
}
