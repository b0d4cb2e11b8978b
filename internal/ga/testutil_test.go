package ga

import (
	"ga-route-service/internal/domain"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// kmPerDegree is the haversine length of one degree along a great circle.
const kmPerDegree = domain.EarthRadiusKm * 3.141592653589793 / 180

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomPoints scatters n points over a city-sized box.
func randomPoints(n int, rng *rand.Rand) []domain.Point {
	pts := make([]domain.Point, n)
	for i := range pts {
		pts[i] = domain.Point{
			Lat: 46.30 + rng.Float64()*0.1,
			Lng: 48.00 + rng.Float64()*0.1,
		}
	}
	return pts
}

func randomPerm(n int, rng *rand.Rand) []int {
	genes := identity(n)
	shuffle(genes, rng)
	return genes
}

func requirePermutation(t *testing.T, genes []int, n int) {
	t.Helper()
	require.NoError(t, ValidatePermutation(genes, n), "genes=%v", genes)

	sorted := slices.Clone(genes)
	slices.Sort(sorted)
	require.Equal(t, identity(n), sorted)
}
