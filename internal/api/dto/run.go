package dto

import (
	"ga-route-service/internal/services"
	"time"
)

type CreateRunRequest struct {
	PointSetID     string         `json:"point_set_id"`
	Points         []Point        `json:"points"`
	Params         *ParamsRequest `json:"params"`
	MaxGenerations int            `json:"max_generations"`
}

type RunResponse struct {
	ID             string          `json:"id"`
	PointSetID     string          `json:"point_set_id,omitempty"`
	Params         ParamsResponse  `json:"params"`
	MaxGenerations int             `json:"max_generations"`
	PointCount     int             `json:"point_count"`
	CreatedAt      time.Time       `json:"created_at"`
	Running        bool            `json:"running"`
	Initialized    bool            `json:"initialized"`
	Generation     int             `json:"generation"`
	DistanceKm     float64         `json:"distance_km"`
	Fitness        float64         `json:"fitness"`
	Genes          []int           `json:"genes"`
	Route          []Point         `json:"route"`
	Stats          *GenerationStat `json:"stats,omitempty"`
}

func RunFromView(v services.RunView) RunResponse {
	res := RunResponse{
		ID:             v.ID,
		PointSetID:     v.PointSetID,
		Params:         ParamsFromGA(v.Params),
		MaxGenerations: v.MaxGenerations,
		PointCount:     len(v.Points),
		CreatedAt:      v.CreatedAt,
		Running:        v.Running,
		Initialized:    v.Initialized,
		Generation:     v.Generation,
		DistanceKm:     v.DistanceKm,
		Fitness:        v.Fitness,
		Genes:          v.Genes,
		Route:          PointsFromDomain(v.Route),
	}
	if v.Initialized {
		s := GenerationStatFromDomain(v.Stats)
		res.Stats = &s
	}
	if res.Genes == nil {
		res.Genes = []int{}
	}
	return res
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}

type HistoryResponse struct {
	RunID       string           `json:"run_id"`
	Generations []GenerationStat `json:"generations"`
}
