package handlers

import (
	"ga-route-service/internal/api/dto"
	"ga-route-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PointSetHandler exposes stored point sets and the results recorded for them.
type PointSetHandler struct {
	Service *services.PointSetService
}

func (h *PointSetHandler) List(w http.ResponseWriter, r *http.Request) {
	sets, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "list point sets", err)
		return
	}

	res := dto.ListPointSetsResponse{PointSets: make([]dto.PointSetResponse, 0, len(sets))}
	for _, ps := range sets {
		res.PointSets = append(res.PointSets, dto.PointSetFromDomain(ps))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *PointSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePointSetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ps, err := h.Service.Create(r.Context(), services.CreatePointSetRequest{
		Name:      req.Name,
		Points:    dto.PointsToDomain(req.Points),
		Labels:    req.Labels,
		Addresses: req.Addresses,
	})
	if err != nil {
		writeServiceError(w, r, "create point set", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.PointSetFromDomain(ps))
}

func (h *PointSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "get point set", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.PointSetFromDomain(ps))
}

func (h *PointSetHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "list results", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ResultsFromDomain(results))
}
