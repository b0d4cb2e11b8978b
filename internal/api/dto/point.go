package dto

import "ga-route-service/internal/domain"

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func PointsToDomain(in []Point) []domain.Point {
	out := make([]domain.Point, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Point{Lat: p.Lat, Lng: p.Lng})
	}
	return out
}

func PointsFromDomain(in []domain.Point) []Point {
	out := make([]Point, 0, len(in))
	for _, p := range in {
		out = append(out, Point{Lat: p.Lat, Lng: p.Lng})
	}
	return out
}

type GenerationStat struct {
	Generation      int     `json:"generation"`
	BestDistanceKm  float64 `json:"best_distance_km"`
	MeanDistanceKm  float64 `json:"mean_distance_km"`
	StdDistanceKm   float64 `json:"std_distance_km"`
	WorstDistanceKm float64 `json:"worst_distance_km"`
}

func GenerationStatFromDomain(s domain.GenerationStat) GenerationStat {
	return GenerationStat{
		Generation:      s.Generation,
		BestDistanceKm:  s.BestDistance,
		MeanDistanceKm:  s.MeanDistance,
		StdDistanceKm:   s.StdDistance,
		WorstDistanceKm: s.WorstDistance,
	}
}

func GenerationStatsFromDomain(in []domain.GenerationStat) []GenerationStat {
	out := make([]GenerationStat, 0, len(in))
	for _, s := range in {
		out = append(out, GenerationStatFromDomain(s))
	}
	return out
}
