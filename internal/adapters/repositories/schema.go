package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS point_sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS points (
		point_set_id TEXT NOT NULL REFERENCES point_sets(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (point_set_id, idx)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS run_results (
		run_id TEXT PRIMARY KEY,
		point_set_id TEXT NOT NULL DEFAULT '',
		pop_size INTEGER NOT NULL,
		mutation_rate REAL NOT NULL,
		crossover_rate REAL NOT NULL,
		selection TEXT NOT NULL,
		generation INTEGER NOT NULL,
		distance_km REAL NOT NULL,
		genes TEXT NOT NULL,
		finished_at TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lng REAL NOT NULL,
		lat REAL NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_run_results_point_set_distance
	ON run_results(point_set_id, distance_km);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS point_sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS points (
		point_set_id TEXT NOT NULL REFERENCES point_sets(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (point_set_id, idx)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS run_results (
		run_id TEXT PRIMARY KEY,
		point_set_id TEXT NOT NULL DEFAULT '',
		pop_size INTEGER NOT NULL,
		mutation_rate DOUBLE PRECISION NOT NULL,
		crossover_rate DOUBLE PRECISION NOT NULL,
		selection TEXT NOT NULL,
		generation INTEGER NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		genes TEXT NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lng DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_run_results_point_set_distance
	ON run_results(point_set_id, distance_km);
	`,
}

// Initialize the database schema for the given driver ("sqlite" or "pgx").
func InitSchema(ctx context.Context, db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch driver {
	case "sqlite":
		statements = sqliteSchema
	case "pgx":
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported driver %q", driver)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
