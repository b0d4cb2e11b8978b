package ga

import (
	"fmt"
	"strings"
)

// SelectionMethod names a parent-selection strategy.
type SelectionMethod string

const (
	Tournament SelectionMethod = "tournament"
	Roulette   SelectionMethod = "roulette"
)

// Parse a selection method name. An empty name selects the tournament default.
func ParseSelectionMethod(s string) (SelectionMethod, error) {
	switch SelectionMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", Tournament:
		return Tournament, nil
	case Roulette:
		return Roulette, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSelection, s)
	}
}

// Params are the hyperparameters of one run. They are fixed once the engine is built.
type Params struct {
	PopSize       int
	MutationRate  float64
	CrossoverRate float64
	Selection     SelectionMethod
	// Seed makes a run reproducible. Zero seeds from entropy.
	Seed uint64
}

func DefaultParams() Params {
	return Params{
		PopSize:       100,
		MutationRate:  0.02,
		CrossoverRate: 0.8,
		Selection:     Tournament,
	}
}

func (p Params) Validate() error {
	if p.PopSize < 1 {
		return fmt.Errorf("%w: pop_size=%d", ErrPopSize, p.PopSize)
	}
	if p.MutationRate < 0 || p.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate=%g", ErrRate, p.MutationRate)
	}
	if p.CrossoverRate < 0 || p.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover_rate=%g", ErrRate, p.CrossoverRate)
	}
	return nil
}
