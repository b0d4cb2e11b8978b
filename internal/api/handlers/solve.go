package handlers

import (
	"fmt"
	"ga-route-service/internal/api/dto"
	"ga-route-service/internal/ga"
	"ga-route-service/internal/services"
	"net/http"
)

// MaxSolveGenerations bounds a synchronous solve request.
const MaxSolveGenerations = 20000

// SolveHandler evolves a tour within the request and returns the best one found.
type SolveHandler struct {
	Defaults   ga.Params
	MaxPoints  int
	MaxPopSize int
}

func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req dto.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Generations < 0 || req.Generations > MaxSolveGenerations {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("generations must be between 0 and %d", MaxSolveGenerations))
		return
	}

	points := dto.PointsToDomain(req.Points)
	if err := services.ValidatePoints(points, h.MaxPoints); err != nil {
		writeServiceError(w, r, "solve", err)
		return
	}

	params, err := req.Params.Overrides().Apply(h.Defaults, h.MaxPopSize)
	if err != nil {
		writeServiceError(w, r, "solve", err)
		return
	}

	res, err := services.SolveTour(r.Context(), services.SolveRequest{
		Points:      points,
		Params:      params,
		Generations: req.Generations,
		Stagnation:  req.Stagnation,
	})
	if err != nil {
		writeServiceError(w, r, "solve", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SolveResponse{
		Generation: res.Generation,
		DistanceKm: res.DistanceKm,
		Genes:      res.Genes,
		Route:      dto.PointsFromDomain(res.Route),
		History:    dto.GenerationStatsFromDomain(res.History),
	})
}
