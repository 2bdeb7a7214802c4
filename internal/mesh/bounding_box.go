package mesh

// BoundingBox is an axis-aligned rectangle given by its south-west and
// north-east corners. A box whose south-west corner lies north or east of its
// north-east corner is allowed; it contains nothing and enumerates nothing.
type BoundingBox struct {
	southWest Coordinate
	northEast Coordinate
}

func NewBoundingBox(southWest, northEast Coordinate) BoundingBox {
	return BoundingBox{southWest: southWest, northEast: northEast}
}

func (b BoundingBox) SouthWest() Coordinate { return b.southWest }
func (b BoundingBox) NorthEast() Coordinate { return b.northEast }

func (b BoundingBox) MinLat() float64 { return b.southWest.lat }
func (b BoundingBox) MaxLat() float64 { return b.northEast.lat }
func (b BoundingBox) MinLon() float64 { return b.southWest.lon }
func (b BoundingBox) MaxLon() float64 { return b.northEast.lon }

// Contains reports whether c lies inside the box, edges included.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.lat >= b.MinLat() && c.lat <= b.MaxLat() &&
		c.lon >= b.MinLon() && c.lon <= b.MaxLon()
}

// Center is the midpoint of both axes.
func (b BoundingBox) Center() Coordinate {
	return UncheckedCoordinate(
		(b.MinLat()+b.MaxLat())/2,
		(b.MinLon()+b.MaxLon())/2,
	)
}
