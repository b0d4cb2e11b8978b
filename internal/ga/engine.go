// Package ga evolves approximately-shortest closed tours over geographic
// points with a generational genetic algorithm.
//
// An Engine is not safe for concurrent use. Callers that drive it from
// several goroutines must hold one lock around each call.
package ga

import (
	"fmt"
	"ga-route-service/internal/domain"
	"math/rand/v2"
	"slices"
)

// Engine owns all state of one GA run: population, generation counter and best tour.
type Engine struct {
	points []domain.Point
	params Params
	rng    *rand.Rand

	population []*Individual
	generation int
	best       *Individual
}

// NewEngine configures an engine over points. InitPopulation must be called before Evolve.
func NewEngine(points []domain.Point, params Params) (*Engine, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	return &Engine{
		points: slices.Clone(points),
		params: params,
		rng:    newRNG(params.Seed),
	}, nil
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Evolve advances exactly one generation.
//
// The best tour so far is carried over unchanged, then children are bred until
// the population is full: two parents are selected, crossed over with
// CrossoverRate (otherwise parent 1 is cloned), mutated, and evaluated.
func (e *Engine) Evolve() error {
	if e.best == nil {
		return ErrNotInitialized
	}

	next := make([]*Individual, 0, e.params.PopSize)
	next = append(next, e.best)

	for len(next) < e.params.PopSize {
		p1 := e.selectParent()
		p2 := e.selectParent()

		var child []int
		if e.rng.Float64() < e.params.CrossoverRate {
			child = OrderCrossover(p1.genes, p2.genes, e.rng)
		} else {
			child = slices.Clone(p1.genes)
		}

		Mutate(child, e.params.MutationRate, e.rng)

		next = append(next, e.mustIndividual(child))
	}

	e.population = next
	e.generation++
	e.findBest()

	return nil
}

// mustIndividual panics on a malformed tour: the operators only ever produce
// permutations, so a failure here is a bug.
func (e *Engine) mustIndividual(genes []int) *Individual {
	ind, err := NewIndividual(genes, e.points)
	if err != nil {
		panic(fmt.Sprintf("ga: operator produced invalid tour: %v", err))
	}
	return ind
}

func (e *Engine) Generation() int { return e.generation }

// Best returns the fittest individual observed so far, or nil before InitPopulation.
func (e *Engine) Best() *Individual { return e.best }

// Population returns the current generation. The slice is a copy; individuals are shared.
func (e *Engine) Population() []*Individual { return slices.Clone(e.population) }

func (e *Engine) Points() []domain.Point { return slices.Clone(e.points) }

// Snapshot is a read-only copy of the run's observable state.
type Snapshot struct {
	Generation int
	Genes      []int
	Distance   float64
	Fitness    float64
	Stats      Stats
}

// Snapshot copies the current best tour and population statistics.
// ok is false before InitPopulation.
func (e *Engine) Snapshot() (snap Snapshot, ok bool) {
	if e.best == nil {
		return Snapshot{}, false
	}

	return Snapshot{
		Generation: e.generation,
		Genes:      e.best.Genes(),
		Distance:   e.best.distance,
		Fitness:    e.best.fitness,
		Stats:      PopulationStats(e.population),
	}, true
}

// Route maps the snapshot's genes to points and closes the loop by repeating the first point.
func (s Snapshot) Route(points []domain.Point) []domain.Point {
	if len(s.Genes) == 0 {
		return nil
	}

	route := make([]domain.Point, 0, len(s.Genes)+1)
	for _, g := range s.Genes {
		route = append(route, points[g])
	}
	return append(route, points[s.Genes[0]])
}
