package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ports"
	"time"
)

// SQLite-backed implementation of the PointSetRepository and ResultRepository ports.
type SqliteStore struct{ DB *sql.DB }

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{DB: db}
}

// Return all point sets, oldest first.
func (s *SqliteStore) ListPointSets(ctx context.Context) ([]*domain.PointSet, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		name,
		created_at
	FROM point_sets
	ORDER BY created_at, id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list point sets: query point_sets table: %w", err)
	}

	sets := make([]*domain.PointSet, 0, 16)
	byID := make(map[string]*domain.PointSet)
	for rows.Next() {
		ps, err := scanSqlitePointSet(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("list point sets: %w", err)
		}
		sets = append(sets, ps)
		byID[ps.ID] = ps
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list point sets: row iteration: %w", err)
	}
	rows.Close()

	points, err := s.queryPoints(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list point sets: %w", err)
	}
	attachPoints(byID, points)

	return sets, nil
}

// Return one point set with its points in tour-index order.
func (s *SqliteStore) GetPointSet(ctx context.Context, id string) (*domain.PointSet, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT
		id,
		name,
		created_at
	FROM point_sets
	WHERE id = ?;
	`, id)

	ps, err := scanSqlitePointSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get point set %q: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get point set %q: %w", id, err)
	}

	points, err := s.queryPoints(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get point set %q: %w", id, err)
	}
	attachPoints(map[string]*domain.PointSet{ps.ID: ps}, points)

	return ps, nil
}

// Insert or replace a point set together with all of its points.
func (s *SqliteStore) SavePointSet(ctx context.Context, ps *domain.PointSet) error {
	if s.DB == nil {
		return errors.New("sqlite store: DB is nil")
	}
	if ps == nil || ps.ID == "" {
		return errors.New("save point set: id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save point set: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO point_sets (
		id,
		name,
		created_at
	)
	VALUES (?, ?, ?);
	`, ps.ID, ps.Name, ps.CreatedAt.UTC().Format(sqliteTimeLayout)); err != nil {
		return fmt.Errorf("save point set %q: insert point_sets: %w", ps.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE point_set_id = ?;`, ps.ID); err != nil {
		return fmt.Errorf("save point set %q: clear points: %w", ps.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO points (
		point_set_id,
		idx,
		lat,
		lng,
		label
	)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save point set %q: prepare insert: %w", ps.ID, err)
	}
	defer stmt.Close()

	for i, p := range ps.Points {
		if _, err := stmt.ExecContext(ctx, ps.ID, i, p.Lat, p.Lng, label(ps, i)); err != nil {
			return fmt.Errorf("save point set %q: insert point %d: %w", ps.ID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save point set %q: commit tx: %w", ps.ID, err)
	}

	return nil
}

// Record the best tour of a stopped run. Saving the same run again replaces the record.
func (s *SqliteStore) SaveResult(ctx context.Context, r domain.RunResult) error {
	if s.DB == nil {
		return errors.New("sqlite store: DB is nil")
	}

	genes, err := encodeGenes(r.Genes)
	if err != nil {
		return fmt.Errorf("save result %q: %w", r.RunID, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO run_results (
		run_id,
		point_set_id,
		pop_size,
		mutation_rate,
		crossover_rate,
		selection,
		generation,
		distance_km,
		genes,
		finished_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		r.RunID, r.PointSetID, r.PopSize, r.MutationRate, r.CrossoverRate,
		r.Selection, r.Generation, r.DistanceKm, genes,
		r.FinishedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save result %q: insert run_results: %w", r.RunID, err)
	}

	return nil
}

// Return results for a point set, shortest tour first.
func (s *SqliteStore) ListResults(ctx context.Context, pointSetID string) ([]domain.RunResult, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		run_id,
		point_set_id,
		pop_size,
		mutation_rate,
		crossover_rate,
		selection,
		generation,
		distance_km,
		genes,
		finished_at
	FROM run_results
	WHERE point_set_id = ?
	ORDER BY distance_km, finished_at DESC;
	`, pointSetID)
	if err != nil {
		return nil, fmt.Errorf("list results: query run_results table: %w", err)
	}
	defer rows.Close()

	results := make([]domain.RunResult, 0, 16)
	for rows.Next() {
		var (
			r          domain.RunResult
			genes      string
			finishedAt string
		)
		if err := rows.Scan(
			&r.RunID, &r.PointSetID, &r.PopSize, &r.MutationRate, &r.CrossoverRate,
			&r.Selection, &r.Generation, &r.DistanceKm, &genes, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("list results: scan row: %w", err)
		}

		if r.Genes, err = decodeGenes(genes); err != nil {
			return nil, fmt.Errorf("list results: run %q: %w", r.RunID, err)
		}
		if r.FinishedAt, err = time.Parse(sqliteTimeLayout, finishedAt); err != nil {
			return nil, fmt.Errorf("list results: run %q: parse finished_at: %w", r.RunID, err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: row iteration: %w", err)
	}

	return results, nil
}

// queryPoints loads points of one set, or of every set when setID is empty.
func (s *SqliteStore) queryPoints(ctx context.Context, setID string) ([]pointRow, error) {
	q := `
	SELECT
		point_set_id,
		lat,
		lng,
		label
	FROM points
	WHERE (? = '' OR point_set_id = ?)
	ORDER BY point_set_id, idx;
	`
	rows, err := s.DB.QueryContext(ctx, q, setID, setID)
	if err != nil {
		return nil, fmt.Errorf("query points table: %w", err)
	}
	defer rows.Close()

	out := make([]pointRow, 0, 64)
	for rows.Next() {
		var r pointRow
		if err := rows.Scan(&r.setID, &r.lat, &r.lng, &r.label); err != nil {
			return nil, fmt.Errorf("scan point row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("point row iteration: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqlitePointSet(row rowScanner) (*domain.PointSet, error) {
	var (
		ps        domain.PointSet
		createdAt string
	)
	if err := row.Scan(&ps.ID, &ps.Name, &createdAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of %q: %w", ps.ID, err)
	}
	ps.CreatedAt = t

	return &ps, nil
}
