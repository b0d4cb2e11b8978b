package handlers

import (
	"context"
	"fmt"
	"ga-route-service/internal/api/dto"
	"ga-route-service/internal/services"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// MaxStep bounds a single synchronous step request.
const MaxStep = 10000

// RunHandler drives interactive runs: create, start, pause, reset, step.
type RunHandler struct {
	Runs *services.RunManager
}

func (h *RunHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRunRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.Runs.Create(r.Context(), services.CreateRunRequest{
		PointSetID:     req.PointSetID,
		Points:         dto.PointsToDomain(req.Points),
		Params:         req.Params.Overrides(),
		MaxGenerations: req.MaxGenerations,
	})
	if err != nil {
		writeServiceError(w, r, "create run", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.RunFromView(v))
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	views := h.Runs.List()

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(views))}
	for _, v := range views {
		res.Runs = append(res.Runs, dto.RunFromView(v))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Runs.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "get run", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RunFromView(v))
}

func (h *RunHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Runs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, "delete run", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RunHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start run", h.Runs.Start)
}

func (h *RunHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "pause run", h.Runs.Pause)
}

func (h *RunHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reset run", h.Runs.Reset)
}

func (h *RunHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, id string) (services.RunView, error),
) {
	v, err := fn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RunFromView(v))
}

// Step advances a paused run by ?n= generations (default 1).
func (h *RunHandler) Step(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > MaxStep {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("n must be between 1 and %d", MaxStep))
			return
		}
		n = parsed
	}

	v, err := h.Runs.Step(r.Context(), chi.URLParam(r, "id"), n)
	if err != nil {
		writeServiceError(w, r, "step run", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RunFromView(v))
}

func (h *RunHandler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := h.Runs.History(id)
	if err != nil {
		writeServiceError(w, r, "run history", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HistoryResponse{
		RunID:       id,
		Generations: dto.GenerationStatsFromDomain(history),
	})
}
