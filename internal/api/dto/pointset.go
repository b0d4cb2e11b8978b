package dto

import (
	"ga-route-service/internal/domain"
	"time"
)

type CreatePointSetRequest struct {
	Name      string   `json:"name"`
	Points    []Point  `json:"points"`
	Labels    []string `json:"labels"`
	Addresses []string `json:"addresses"`
}

type PointSetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Points    []Point   `json:"points"`
	Labels    []string  `json:"labels,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func PointSetFromDomain(ps *domain.PointSet) PointSetResponse {
	return PointSetResponse{
		ID:        ps.ID,
		Name:      ps.Name,
		Points:    PointsFromDomain(ps.Points),
		Labels:    ps.Labels,
		CreatedAt: ps.CreatedAt,
	}
}

type ListPointSetsResponse struct {
	PointSets []PointSetResponse `json:"point_sets"`
}

type ResultResponse struct {
	RunID         string    `json:"run_id"`
	PointSetID    string    `json:"point_set_id"`
	PopSize       int       `json:"pop_size"`
	MutationRate  float64   `json:"mutation_rate"`
	CrossoverRate float64   `json:"crossover_rate"`
	Selection     string    `json:"selection"`
	Generation    int       `json:"generation"`
	DistanceKm    float64   `json:"distance_km"`
	Genes         []int     `json:"genes"`
	FinishedAt    time.Time `json:"finished_at"`
}

type ListResultsResponse struct {
	Results []ResultResponse `json:"results"`
}

func ResultsFromDomain(in []domain.RunResult) ListResultsResponse {
	res := ListResultsResponse{Results: make([]ResultResponse, 0, len(in))}
	for _, r := range in {
		res.Results = append(res.Results, ResultResponse{
			RunID:         r.RunID,
			PointSetID:    r.PointSetID,
			PopSize:       r.PopSize,
			MutationRate:  r.MutationRate,
			CrossoverRate: r.CrossoverRate,
			Selection:     r.Selection,
			Generation:    r.Generation,
			DistanceKm:    r.DistanceKm,
			Genes:         r.Genes,
			FinishedAt:    r.FinishedAt,
		})
	}
	return res
}
