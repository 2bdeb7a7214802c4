package entities

import "meshcode/internal/mesh"

// Bounds is the wire form of a cell rectangle.
type Bounds struct {
	SouthWest Location `json:"south_west"`
	NorthEast Location `json:"north_east"`
}

func BoundsOf(b mesh.BoundingBox) Bounds {
	return Bounds{
		SouthWest: LocationOf(b.SouthWest()),
		NorthEast: LocationOf(b.NorthEast()),
	}
}

// MeshCell describes one mesh cell: its code, level, rectangle and center.
type MeshCell struct {
	Code        mesh.Code `json:"code"`
	Level       string    `json:"level"`
	Bounds      Bounds    `json:"bounds"`
	Center      Location  `json:"center"`
	ApproxSizeM float64   `json:"approx_size_m"`
}

func NewMeshCell(code mesh.Code) MeshCell {
	box := code.Bounds()
	return MeshCell{
		Code:        code,
		Level:       code.Level().String(),
		Bounds:      BoundsOf(box),
		Center:      LocationOf(box.Center()),
		ApproxSizeM: code.Level().ApproximateSizeMeters(),
	}
}

// NewMeshCells describes each code in order.
func NewMeshCells(codes []mesh.Code) []MeshCell {
	cells := make([]MeshCell, len(codes))
	for i, c := range codes {
		cells[i] = NewMeshCell(c)
	}
	return cells
}
