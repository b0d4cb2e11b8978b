package repositories

import (
	"context"
	"database/sql"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/platform/db"
	"ga-route-service/internal/ports"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, db.DriverSQLite))
	return conn
}

func TestSqliteStorePointSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSqliteStore(openTestDB(t))

	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	ps := &domain.PointSet{
		ID:        "astrakhan",
		Name:      "Astrakhan center",
		Points:    []domain.Point{{Lat: 46.3497, Lng: 48.0408}, {Lat: 46.3550, Lng: 48.0300}, {Lat: 46.3400, Lng: 48.0500}},
		Labels:    []string{"kremlin", "", "station"},
		CreatedAt: created,
	}
	require.NoError(t, store.SavePointSet(ctx, ps))

	got, err := store.GetPointSet(ctx, "astrakhan")
	require.NoError(t, err)
	assert.Equal(t, ps.Name, got.Name)
	assert.Equal(t, ps.Points, got.Points)
	assert.Equal(t, ps.Labels, got.Labels)
	assert.True(t, created.Equal(got.CreatedAt))

	// Saving again replaces the points instead of appending.
	ps.Points = ps.Points[:2]
	ps.Labels = ps.Labels[:2]
	require.NoError(t, store.SavePointSet(ctx, ps))

	got, err = store.GetPointSet(ctx, "astrakhan")
	require.NoError(t, err)
	assert.Len(t, got.Points, 2)
}

func TestSqliteStoreGetMissingPointSet(t *testing.T) {
	store := NewSqliteStore(openTestDB(t))

	_, err := store.GetPointSet(context.Background(), "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSqliteStoreListPointSets(t *testing.T) {
	ctx := context.Background()
	store := NewSqliteStore(openTestDB(t))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a", "c"} {
		require.NoError(t, store.SavePointSet(ctx, &domain.PointSet{
			ID:        id,
			Name:      "set " + id,
			Points:    []domain.Point{{Lat: float64(i), Lng: 1}, {Lat: float64(i), Lng: 2}, {Lat: float64(i), Lng: 3}},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	sets, err := store.ListPointSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 3)

	assert.Equal(t, []string{"b", "a", "c"}, []string{sets[0].ID, sets[1].ID, sets[2].ID})
	for i, ps := range sets {
		require.Len(t, ps.Points, 3)
		assert.Equal(t, float64(i), ps.Points[0].Lat)
		assert.Equal(t, 3.0, ps.Points[2].Lng)
	}
}

func TestSqliteStoreResults(t *testing.T) {
	ctx := context.Background()
	store := NewSqliteStore(openTestDB(t))

	finished := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	results := []domain.RunResult{
		{RunID: "r1", PointSetID: "ps", PopSize: 100, MutationRate: 0.02, CrossoverRate: 0.8, Selection: "tournament", Generation: 500, DistanceKm: 12.5, Genes: []int{0, 2, 1}, FinishedAt: finished},
		{RunID: "r2", PointSetID: "ps", PopSize: 50, MutationRate: 0.1, CrossoverRate: 0.9, Selection: "roulette", Generation: 40, DistanceKm: 11.0, Genes: []int{1, 0, 2}, FinishedAt: finished},
		{RunID: "r3", PointSetID: "other", PopSize: 50, Selection: "roulette", Generation: 1, DistanceKm: 1, Genes: []int{0, 1, 2}, FinishedAt: finished},
	}
	for _, r := range results {
		require.NoError(t, store.SaveResult(ctx, r))
	}

	got, err := store.ListResults(ctx, "ps")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].RunID, "shortest tour first")
	assert.Equal(t, []int{1, 0, 2}, got[0].Genes)
	assert.Equal(t, "roulette", got[0].Selection)
	assert.True(t, finished.Equal(got[1].FinishedAt))

	// A run saved again keeps a single record.
	results[0].Generation = 900
	results[0].DistanceKm = 10
	require.NoError(t, store.SaveResult(ctx, results[0]))

	got, err = store.ListResults(ctx, "ps")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].RunID)
	assert.Equal(t, 900, got[0].Generation)
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	store := NewSqliteStore(openTestDB(t))

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "tri", "name": "Triangle", "points": [
			{"lat": 0, "lng": 0, "label": "a"},
			{"lat": 0, "lng": 1},
			{"lat": 1, "lng": 0}
		]}
	]`), 0o600))

	require.NoError(t, SeedFromJSON(ctx, store, path))
	require.NoError(t, SeedFromJSON(ctx, store, path), "reseeding is idempotent")

	sets, err := store.ListPointSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Triangle", sets[0].Name)
	assert.Equal(t, []string{"a", "", ""}, sets[0].Labels)
}

func TestSeedFromJSONRejectsInvalidSeeds(t *testing.T) {
	store := NewSqliteStore(openTestDB(t))

	tests := map[string]string{
		"missing id":   `[{"name": "x", "points": [{"lat": 0, "lng": 0}]}]`,
		"missing name": `[{"id": "x", "points": [{"lat": 0, "lng": 0}]}]`,
		"no points":    `[{"id": "x", "name": "x", "points": []}]`,
		"bad lat":      `[{"id": "x", "name": "x", "points": [{"lat": 91, "lng": 0}]}]`,
		"not json":     `{`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			require.Error(t, SeedFromJSON(context.Background(), store, path))
		})
	}
}

func TestInitSchemaRejectsUnknownDriver(t *testing.T) {
	require.Error(t, InitSchema(context.Background(), openTestDB(t), "mysql"))
	require.Error(t, InitSchema(context.Background(), nil, db.DriverSQLite))
}
