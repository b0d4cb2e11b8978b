package ga

import "math/rand/v2"

// tournamentSize is the number of draws per tournament.
const tournamentSize = 5

// selectParent picks one parent with the configured method.
// Anything other than roulette falls back to tournament selection.
func (e *Engine) selectParent() *Individual {
	if e.params.Selection == Roulette {
		return rouletteSelect(e.population, e.rng)
	}
	return tournamentSelect(e.population, tournamentSize, e.rng)
}

// tournamentSelect draws k individuals with replacement and returns the fittest.
// Ties keep the earliest draw.
func tournamentSelect(pop []*Individual, k int, rng *rand.Rand) *Individual {
	var best *Individual
	for i := 0; i < k; i++ {
		ind := pop[rng.IntN(len(pop))]
		if best == nil || ind.fitness > best.fitness {
			best = ind
		}
	}
	return best
}

// rouletteSelect samples proportionally to fitness.
func rouletteSelect(pop []*Individual, rng *rand.Rand) *Individual {
	total := 0.0
	for _, ind := range pop {
		total += ind.fitness
	}

	r := rng.Float64() * total
	acc := 0.0
	for _, ind := range pop {
		acc += ind.fitness
		if acc >= r {
			return ind
		}
	}

	// Accumulated rounding can leave acc just short of r.
	return pop[len(pop)-1]
}
