package main

import (
	"ga-route-service/internal/config"
	"ga-route-service/internal/ga"
	"ga-route-service/internal/services"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareRunEnforcesLimits(t *testing.T) {
	cfg := config.Config{MaxPoints: 10, MaxPopSize: 500}

	params, err := prepareRun(randomPoints(5, 1), services.ParamOverrides{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, ga.DefaultParams(), params)

	_, err = prepareRun(randomPoints(2, 1), services.ParamOverrides{}, cfg)
	require.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = prepareRun(randomPoints(11, 1), services.ParamOverrides{}, cfg)
	require.ErrorIs(t, err, services.ErrInvalidInput)

	pop := 501
	_, err = prepareRun(randomPoints(5, 1), services.ParamOverrides{PopSize: &pop}, cfg)
	require.ErrorIs(t, err, services.ErrInvalidInput)

	sel := "rank"
	_, err = prepareRun(randomPoints(5, 1), services.ParamOverrides{Selection: &sel}, cfg)
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestPrepareRunRejectsOutOfRangeFilePoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	data := `[{"id":"bad","name":"bad","points":[{"lat":91,"lng":0},{"lat":1,"lng":1},{"lat":2,"lng":2}]}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	points, err := loadPoints(path, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, points, 3)

	_, err = prepareRun(points, services.ParamOverrides{}, config.Config{MaxPoints: 50})
	require.ErrorIs(t, err, services.ErrInvalidInput)
}
