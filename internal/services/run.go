package services

import (
	"context"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ga"
	"slices"
	"sync"
	"time"
)

// run is one GA run owned by a RunManager. All fields below mu are guarded by it;
// the engine is only touched with mu held.
type run struct {
	id             string
	pointSetID     string
	points         []domain.Point
	params         ga.Params
	maxGenerations int
	createdAt      time.Time

	mu            sync.Mutex
	engine        *ga.Engine
	history       []domain.GenerationStat
	running       bool
	stop          context.CancelFunc
	done          chan struct{}
	lastPublished int
	publishedBest float64
}

// RunView is a point-in-time copy of a run's observable state.
type RunView struct {
	ID             string
	PointSetID     string
	Params         ga.Params
	MaxGenerations int
	Points         []domain.Point
	CreatedAt      time.Time

	Running     bool
	Initialized bool
	Generation  int
	DistanceKm  float64
	Fitness     float64
	Genes       []int
	Route       []domain.Point
	Stats       domain.GenerationStat
}

// view must be called with r.mu held.
func (r *run) view() RunView {
	v := RunView{
		ID:             r.id,
		PointSetID:     r.pointSetID,
		Params:         r.params,
		MaxGenerations: r.maxGenerations,
		Points:         slices.Clone(r.points),
		CreatedAt:      r.createdAt,
		Running:        r.running,
	}

	if r.engine == nil {
		return v
	}

	snap, ok := r.engine.Snapshot()
	if !ok {
		return v
	}
	v.Initialized = true
	v.Generation = snap.Generation
	v.DistanceKm = snap.Distance
	v.Fitness = snap.Fitness
	v.Genes = snap.Genes
	v.Route = snap.Route(r.points)
	v.Stats = generationStat(snap)
	return v
}

// ensureEngine builds and seeds the engine on first use. Must be called with r.mu held.
func (r *run) ensureEngine(historyLimit int) error {
	if r.engine != nil {
		return nil
	}

	engine, err := ga.NewEngine(r.points, r.params)
	if err != nil {
		return err
	}
	engine.InitPopulation()

	r.engine = engine
	r.history = r.history[:0]
	r.lastPublished = 0
	r.publishedBest = 0

	snap, _ := engine.Snapshot()
	r.record(generationStat(snap), historyLimit)
	return nil
}

// record appends a stat, dropping the oldest once limit is reached.
func (r *run) record(stat domain.GenerationStat, limit int) {
	if limit > 0 && len(r.history) >= limit {
		r.history = append(r.history[:0], r.history[len(r.history)-limit+1:]...)
	}
	r.history = append(r.history, stat)
}

func (r *run) finished() bool {
	return r.maxGenerations > 0 && r.engine != nil && r.engine.Generation() >= r.maxGenerations
}

func (r *run) progress(now time.Time) domain.Progress {
	snap, _ := r.engine.Snapshot()
	return domain.Progress{
		RunID:      r.id,
		Generation: snap.Generation,
		Distance:   snap.Distance,
		Fitness:    snap.Fitness,
		Genes:      snap.Genes,
		Stats:      generationStat(snap),
		Running:    r.running,
		At:         now,
	}
}

func (r *run) result(now time.Time) domain.RunResult {
	snap, _ := r.engine.Snapshot()
	return domain.RunResult{
		RunID:         r.id,
		PointSetID:    r.pointSetID,
		PopSize:       r.params.PopSize,
		MutationRate:  r.params.MutationRate,
		CrossoverRate: r.params.CrossoverRate,
		Selection:     string(r.params.Selection),
		Generation:    snap.Generation,
		DistanceKm:    snap.Distance,
		Genes:         snap.Genes,
		FinishedAt:    now,
	}
}
