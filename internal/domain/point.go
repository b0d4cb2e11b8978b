package domain

// Immutable geographic point in degrees.
// A point's identity within a run is its index in the point set.
type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether the point lies inside the WGS84 coordinate range.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
