package dto

type SolveRequest struct {
	Points      []Point        `json:"points"`
	Params      *ParamsRequest `json:"params"`
	Generations int            `json:"generations"`
	Stagnation  int            `json:"stagnation"`
}

type SolveResponse struct {
	Generation int              `json:"generation"`
	DistanceKm float64          `json:"distance_km"`
	Genes      []int            `json:"genes"`
	Route      []Point          `json:"route"`
	History    []GenerationStat `json:"history"`
}
