package ga

import "math/rand/v2"

// InitPopulation builds a fresh population and restarts the run at generation 0.
// The first individual visits points in index order; the rest are shuffled.
func (e *Engine) InitPopulation() {
	n := len(e.points)

	e.population = make([]*Individual, 0, e.params.PopSize)
	e.generation = 0
	e.best = nil

	for i := 0; i < e.params.PopSize; i++ {
		genes := identity(n)
		if i > 0 {
			shuffle(genes, e.rng)
		}
		e.population = append(e.population, e.mustIndividual(genes))
	}

	e.findBest()
}

// findBest ratchets the recorded best: it is replaced only by a strictly fitter individual.
func (e *Engine) findBest() {
	if len(e.population) == 0 {
		return
	}

	best := e.population[0]
	for _, ind := range e.population[1:] {
		if ind.fitness > best.fitness {
			best = ind
		}
	}

	if e.best == nil || best.fitness > e.best.fitness {
		e.best = best
	}
}

func identity(n int) []int {
	genes := make([]int, n)
	for i := range genes {
		genes[i] = i
	}
	return genes
}

// shuffle performs an in-place Fisher–Yates shuffle.
func shuffle(a []int, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
