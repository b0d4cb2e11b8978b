package services

import (
	"context"
	"ga-route-service/internal/ga"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededParams(seed uint64) ga.Params {
	p := ga.DefaultParams()
	p.Seed = seed
	return p
}

func TestSolveTourUnitSquare(t *testing.T) {
	res, err := SolveTour(context.Background(), SolveRequest{
		Points: squarePoints(),
		Params: seededParams(1),
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultSolveGenerations, res.Generation)
	assert.InDelta(t, 4.0, res.DistanceKm, 0.05)
	assert.Len(t, res.Genes, 4)
	require.Len(t, res.Route, 5)
	assert.Equal(t, res.Route[0], res.Route[4])
	assert.Len(t, res.History, DefaultSolveGenerations+1)

	for i := 1; i < len(res.History); i++ {
		assert.LessOrEqual(t, res.History[i].BestDistance, res.History[i-1].BestDistance)
	}
}

func TestSolveTourStagnation(t *testing.T) {
	res, err := SolveTour(context.Background(), SolveRequest{
		Points:      squarePoints(),
		Params:      seededParams(2),
		Generations: 10000,
		Stagnation:  20,
	})
	require.NoError(t, err)

	assert.Less(t, res.Generation, 10000)
	assert.GreaterOrEqual(t, res.Generation, 20)
}

func TestSolveTourCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := SolveTour(ctx, SolveRequest{Points: squarePoints(), Params: seededParams(3)})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Generation)
}

func TestSolveTourRejects(t *testing.T) {
	_, err := SolveTour(context.Background(), SolveRequest{Params: seededParams(1)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = SolveTour(context.Background(), SolveRequest{Points: squarePoints(), Params: seededParams(1), Generations: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	bad := seededParams(1)
	bad.PopSize = 0
	_, err = SolveTour(context.Background(), SolveRequest{Points: squarePoints(), Params: bad})
	require.ErrorIs(t, err, ErrInvalidInput)
}
