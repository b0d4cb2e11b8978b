package services

import (
	"context"
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ga"
)

// DefaultSolveGenerations bounds a synchronous solve when the caller sets no limit.
const DefaultSolveGenerations = 500

type SolveRequest struct {
	Points []domain.Point
	Params ga.Params
	// Generations to evolve; 0 uses DefaultSolveGenerations.
	Generations int
	// Stop early after this many generations without improvement; 0 disables.
	Stagnation int
}

type SolveResult struct {
	Generation int
	DistanceKm float64
	Genes      []int
	Route      []domain.Point
	History    []domain.GenerationStat
}

// SolveTour runs a fresh engine to completion and returns its best tour.
// Cancellation is checked between generations; the best tour so far is
// returned together with the context error.
func SolveTour(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	generations := req.Generations
	if generations == 0 {
		generations = DefaultSolveGenerations
	}
	if generations < 0 || req.Stagnation < 0 {
		return nil, fmt.Errorf("solve tour: %w: generations and stagnation must not be negative", ErrInvalidInput)
	}

	engine, err := ga.NewEngine(req.Points, req.Params)
	if err != nil {
		return nil, fmt.Errorf("solve tour: %w: %v", ErrInvalidInput, err)
	}
	engine.InitPopulation()

	history := make([]domain.GenerationStat, 0, generations+1)
	snap, _ := engine.Snapshot()
	history = append(history, generationStat(snap))

	bestFitness := snap.Fitness
	sinceImproved := 0

	for engine.Generation() < generations {
		if err := ctx.Err(); err != nil {
			return solveResult(engine, history), fmt.Errorf("solve tour: %w", err)
		}

		if err := engine.Evolve(); err != nil {
			return nil, fmt.Errorf("solve tour: evolve: %w", err)
		}

		snap, _ = engine.Snapshot()
		history = append(history, generationStat(snap))

		if snap.Fitness > bestFitness {
			bestFitness = snap.Fitness
			sinceImproved = 0
		} else {
			sinceImproved++
		}
		if req.Stagnation > 0 && sinceImproved >= req.Stagnation {
			break
		}
	}

	return solveResult(engine, history), nil
}

func solveResult(engine *ga.Engine, history []domain.GenerationStat) *SolveResult {
	snap, _ := engine.Snapshot()
	return &SolveResult{
		Generation: snap.Generation,
		DistanceKm: snap.Distance,
		Genes:      snap.Genes,
		Route:      snap.Route(engine.Points()),
		History:    history,
	}
}

func generationStat(s ga.Snapshot) domain.GenerationStat {
	return domain.GenerationStat{
		Generation:    s.Generation,
		BestDistance:  s.Distance,
		MeanDistance:  s.Stats.Mean,
		StdDistance:   s.Stats.StdDev,
		WorstDistance: s.Stats.Worst,
	}
}
