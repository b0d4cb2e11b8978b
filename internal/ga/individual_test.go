package ga

import (
	"ga-route-service/internal/domain"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndividualComputesDistanceAndFitness(t *testing.T) {
	points := []domain.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}}

	ind, err := NewIndividual([]int{0, 1, 2, 3}, points)
	require.NoError(t, err)

	want := domain.Haversine(points[0], points[1]) +
		domain.Haversine(points[1], points[2]) +
		domain.Haversine(points[2], points[3]) +
		domain.Haversine(points[3], points[0])

	assert.InDelta(t, want, ind.Distance(), 1e-9)
	assert.Equal(t, 1/(ind.Distance()+fitnessEpsilon), ind.Fitness())
	assert.GreaterOrEqual(t, ind.Distance(), 0.0)
}

func TestNewIndividualWithoutPoints(t *testing.T) {
	ind, err := NewIndividual([]int{2, 0, 1}, nil)
	require.NoError(t, err)

	assert.Zero(t, ind.Distance())
	assert.Zero(t, ind.Fitness())
	assert.Equal(t, []int{2, 0, 1}, ind.Genes())
}

func TestNewIndividualRejectsMalformedGenes(t *testing.T) {
	points := []domain.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}}

	tests := []struct {
		name  string
		genes []int
		want  error
	}{
		{name: "too short", genes: []int{0, 1}, want: ErrGeneCount},
		{name: "too long", genes: []int{0, 1, 2, 0}, want: ErrGeneCount},
		{name: "repeated", genes: []int{0, 1, 1}, want: ErrNotPermutation},
		{name: "out of range", genes: []int{0, 1, 3}, want: ErrNotPermutation},
		{name: "negative", genes: []int{0, -1, 2}, want: ErrNotPermutation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndividual(tt.genes, points)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIndividualZeroLengthTourHasFiniteFitness(t *testing.T) {
	p := domain.Point{Lat: 10, Lng: 10}
	ind, err := NewIndividual([]int{0, 1, 2}, []domain.Point{p, p, p})
	require.NoError(t, err)

	assert.Zero(t, ind.Distance())
	assert.InDelta(t, 1/fitnessEpsilon, ind.Fitness(), 1)
}

func TestGenesReturnsCopy(t *testing.T) {
	ind, err := NewIndividual([]int{0, 1, 2}, nil)
	require.NoError(t, err)

	g := ind.Genes()
	g[0] = 99

	assert.Equal(t, []int{0, 1, 2}, ind.Genes())
}

func TestTourDistanceInvariantUnderRotationAndReversal(t *testing.T) {
	rng := testRNG(7)

	for trial := 0; trial < 100; trial++ {
		n := 3 + rng.IntN(20)
		points := randomPoints(n, rng)
		genes := randomPerm(n, rng)
		base := TourDistance(genes, points)

		k := rng.IntN(n)
		rotated := append(slices.Clone(genes[k:]), genes[:k]...)
		assert.InDelta(t, base, TourDistance(rotated, points), 1e-9)

		reversed := slices.Clone(genes)
		slices.Reverse(reversed)
		assert.InDelta(t, base, TourDistance(reversed, points), 1e-9)
	}
}

func TestCalcFitnessAfterGeneChange(t *testing.T) {
	points := []domain.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}}

	ind, err := NewIndividual([]int{0, 1, 2, 3}, points)
	require.NoError(t, err)
	perimeter := ind.Distance()

	swapGenes(ind.genes, 1, 2)
	ind.CalcFitness(points)

	assert.Greater(t, ind.Distance(), perimeter)
	assert.Equal(t, 1/(ind.Distance()+fitnessEpsilon), ind.Fitness())
}
