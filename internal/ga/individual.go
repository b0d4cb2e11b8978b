package ga

import (
	"fmt"
	"ga-route-service/internal/domain"
	"slices"
)

// fitnessEpsilon keeps fitness finite for zero-length tours.
const fitnessEpsilon = 1e-10

// Individual is a candidate tour: a permutation of point indices with its
// closed-loop distance and fitness. Distance and fitness only change through CalcFitness.
type Individual struct {
	genes    []int
	distance float64
	fitness  float64
}

// NewIndividual takes ownership of genes. When points is nil the distance and
// fitness stay zero; otherwise genes must be a permutation of the point indices.
func NewIndividual(genes []int, points []domain.Point) (*Individual, error) {
	ind := &Individual{genes: genes}
	if points == nil {
		return ind, nil
	}

	if err := ValidatePermutation(genes, len(points)); err != nil {
		return nil, fmt.Errorf("new individual: %w", err)
	}
	ind.CalcFitness(points)

	return ind, nil
}

// CalcFitness recomputes distance and fitness from the current genes.
func (ind *Individual) CalcFitness(points []domain.Point) {
	ind.distance = TourDistance(ind.genes, points)
	ind.fitness = 1 / (ind.distance + fitnessEpsilon)
}

// Genes returns a copy of the tour order.
func (ind *Individual) Genes() []int { return slices.Clone(ind.genes) }

// Distance is the closed tour length in kilometers.
func (ind *Individual) Distance() float64 { return ind.distance }

func (ind *Individual) Fitness() float64 { return ind.fitness }

// TourDistance sums the haversine legs between consecutive genes, including
// the wraparound leg from the last gene back to the first.
func TourDistance(genes []int, points []domain.Point) float64 {
	n := len(genes)
	d := 0.0
	for i := 0; i < n; i++ {
		from := points[genes[i]]
		to := points[genes[(i+1)%n]]
		d += domain.Haversine(from, to)
	}
	return d
}

// ValidatePermutation reports whether genes holds every index in [0, n) exactly once.
func ValidatePermutation(genes []int, n int) error {
	if len(genes) != n {
		return fmt.Errorf("%w: got %d genes for %d points", ErrGeneCount, len(genes), n)
	}

	seen := make([]bool, n)
	for i, g := range genes {
		if g < 0 || g >= n {
			return fmt.Errorf("%w: gene %d at position %d out of range", ErrNotPermutation, g, i)
		}
		if seen[g] {
			return fmt.Errorf("%w: gene %d repeated at position %d", ErrNotPermutation, g, i)
		}
		seen[g] = true
	}

	return nil
}
