package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometers.
// Identical points return 0.
func Haversine(a, b Point) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*sinLng*sinLng
	// Rounding can push h just past 1 for near-antipodal pairs.
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
