package dto

import (
	"ga-route-service/internal/ga"
	"ga-route-service/internal/services"
)

// ParamsRequest fields are optional; omitted fields take the server defaults.
type ParamsRequest struct {
	PopSize       *int     `json:"pop_size"`
	MutationRate  *float64 `json:"mutation_rate"`
	CrossoverRate *float64 `json:"crossover_rate"`
	Selection     *string  `json:"selection"`
	Seed          *uint64  `json:"seed"`
}

func (p *ParamsRequest) Overrides() services.ParamOverrides {
	if p == nil {
		return services.ParamOverrides{}
	}
	return services.ParamOverrides{
		PopSize:       p.PopSize,
		MutationRate:  p.MutationRate,
		CrossoverRate: p.CrossoverRate,
		Selection:     p.Selection,
		Seed:          p.Seed,
	}
}

type ParamsResponse struct {
	PopSize       int     `json:"pop_size"`
	MutationRate  float64 `json:"mutation_rate"`
	CrossoverRate float64 `json:"crossover_rate"`
	Selection     string  `json:"selection"`
	Seed          uint64  `json:"seed,omitempty"`
}

func ParamsFromGA(p ga.Params) ParamsResponse {
	return ParamsResponse{
		PopSize:       p.PopSize,
		MutationRate:  p.MutationRate,
		CrossoverRate: p.CrossoverRate,
		Selection:     string(p.Selection),
		Seed:          p.Seed,
	}
}
