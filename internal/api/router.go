package api

import (
	"ga-route-service/internal/api/handlers"
	"ga-route-service/internal/ga"
	"ga-route-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	PointSets  *services.PointSetService
	Runs       *services.RunManager
	Defaults   ga.Params
	MaxPoints  int
	MaxPopSize int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware, middleware.Recoverer)

	pointSets := &handlers.PointSetHandler{Service: deps.PointSets}
	runs := &handlers.RunHandler{Runs: deps.Runs}
	solve := &handlers.SolveHandler{Defaults: deps.Defaults, MaxPoints: deps.MaxPoints, MaxPopSize: deps.MaxPopSize}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/pointsets", func(r chi.Router) {
		r.Get("/", pointSets.List)
		r.Post("/", pointSets.Create)
		r.Get("/{id}", pointSets.Get)
		r.Get("/{id}/results", pointSets.Results)
	})

	r.Post("/solve", solve.Solve)

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", runs.List)
		r.Post("/", runs.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", runs.Get)
			r.Delete("/", runs.Delete)
			r.Post("/start", runs.Start)
			r.Post("/pause", runs.Pause)
			r.Post("/reset", runs.Reset)
			r.Post("/step", runs.Step)
			r.Get("/history", runs.History)
		})
	})

	return r
}
