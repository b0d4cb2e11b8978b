package domain

import "time"

// PointSet is a named, ordered collection of points a run is configured from.
// Labels is either empty or parallel to Points (e.g. the geocoded address).
type PointSet struct {
	ID        string
	Name      string
	Points    []Point
	Labels    []string
	CreatedAt time.Time
}
