package mesh

// Neighbor returns the adjacent cell of the same level in direction d. The
// probe point is the cell center moved one full cell in each stepped axis;
// if that point leaves the envelope there is no neighbor.
func (c Code) Neighbor(d Direction) (Code, bool) {
	center := c.Center()
	dLon, dLat := d.Offset()

	lat := center.lat + float64(dLat)*c.level.LatSize()
	lon := center.lon + float64(dLon)*c.level.LonSize()
	if !InEnvelope(lat, lon) {
		return Code{}, false
	}
	return Encode(UncheckedCoordinate(lat, lon), c.level), true
}

// Neighbors returns the neighbors in all eight directions, clockwise from
// North, skipping directions that leave the envelope.
func (c Code) Neighbors() []Code {
	out := make([]Code, 0, 8)
	for _, d := range AllDirections() {
		if n, ok := c.Neighbor(d); ok {
			out = append(out, n)
		}
	}
	return out
}
