package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/platform/obs"
	"ga-route-service/internal/ports"
)

// SQLStore is the Postgres-backed (pgx) implementation of the
// PointSetRepository and ResultRepository ports.
type SQLStore struct{ DB *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) ListPointSets(ctx context.Context) (_ []*domain.PointSet, err error) {
	defer obs.Time(ctx, "store.ListPointSets")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, name, created_at
	FROM point_sets
	ORDER BY created_at, id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list point sets: query point_sets table: %w", err)
	}
	defer rows.Close()

	sets := make([]*domain.PointSet, 0, 16)
	byID := make(map[string]*domain.PointSet)
	for rows.Next() {
		var ps domain.PointSet
		if err := rows.Scan(&ps.ID, &ps.Name, &ps.CreatedAt); err != nil {
			return nil, fmt.Errorf("list point sets: scan row: %w", err)
		}
		sets = append(sets, &ps)
		byID[ps.ID] = &ps
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list point sets: row iteration: %w", err)
	}

	points, err := s.queryPoints(ctx, `
	SELECT point_set_id, lat, lng, label
	FROM points
	ORDER BY point_set_id, idx;
	`)
	if err != nil {
		return nil, fmt.Errorf("list point sets: %w", err)
	}
	attachPoints(byID, points)

	return sets, nil
}

func (s *SQLStore) GetPointSet(ctx context.Context, id string) (_ *domain.PointSet, err error) {
	defer obs.Time(ctx, "store.GetPointSet")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	var ps domain.PointSet
	err = s.DB.QueryRowContext(ctx, `
	SELECT id, name, created_at
	FROM point_sets
	WHERE id = $1;
	`, id).Scan(&ps.ID, &ps.Name, &ps.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get point set %q: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get point set %q: %w", id, err)
	}

	points, err := s.queryPoints(ctx, `
	SELECT point_set_id, lat, lng, label
	FROM points
	WHERE point_set_id = $1
	ORDER BY idx;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get point set %q: %w", id, err)
	}
	attachPoints(map[string]*domain.PointSet{ps.ID: &ps}, points)

	return &ps, nil
}

func (s *SQLStore) SavePointSet(ctx context.Context, ps *domain.PointSet) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
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
	INSERT INTO point_sets (id, name, created_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		created_at = EXCLUDED.created_at;
	`, ps.ID, ps.Name, ps.CreatedAt); err != nil {
		return fmt.Errorf("save point set %q: upsert point_sets: %w", ps.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE point_set_id = $1;`, ps.ID); err != nil {
		return fmt.Errorf("save point set %q: clear points: %w", ps.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO points (point_set_id, idx, lat, lng, label)
	VALUES ($1, $2, $3, $4, $5);
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

func (s *SQLStore) SaveResult(ctx context.Context, r domain.RunResult) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	genes, err := encodeGenes(r.Genes)
	if err != nil {
		return fmt.Errorf("save result %q: %w", r.RunID, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO run_results (
		run_id, point_set_id, pop_size, mutation_rate, crossover_rate,
		selection, generation, distance_km, genes, finished_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (run_id) DO UPDATE
	SET generation = EXCLUDED.generation,
		distance_km = EXCLUDED.distance_km,
		genes = EXCLUDED.genes,
		finished_at = EXCLUDED.finished_at;
	`,
		r.RunID, r.PointSetID, r.PopSize, r.MutationRate, r.CrossoverRate,
		r.Selection, r.Generation, r.DistanceKm, genes, r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save result %q: upsert run_results: %w", r.RunID, err)
	}

	return nil
}

func (s *SQLStore) ListResults(ctx context.Context, pointSetID string) (_ []domain.RunResult, err error) {
	defer obs.Time(ctx, "store.ListResults")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		run_id, point_set_id, pop_size, mutation_rate, crossover_rate,
		selection, generation, distance_km, genes, finished_at
	FROM run_results
	WHERE point_set_id = $1
	ORDER BY distance_km, finished_at DESC;
	`, pointSetID)
	if err != nil {
		return nil, fmt.Errorf("list results: query run_results table: %w", err)
	}
	defer rows.Close()

	results := make([]domain.RunResult, 0, 16)
	for rows.Next() {
		var (
			r     domain.RunResult
			genes string
		)
		if err := rows.Scan(
			&r.RunID, &r.PointSetID, &r.PopSize, &r.MutationRate, &r.CrossoverRate,
			&r.Selection, &r.Generation, &r.DistanceKm, &genes, &r.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("list results: scan row: %w", err)
		}

		if r.Genes, err = decodeGenes(genes); err != nil {
			return nil, fmt.Errorf("list results: run %q: %w", r.RunID, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: row iteration: %w", err)
	}

	return results, nil
}

func (s *SQLStore) queryPoints(ctx context.Context, q string, args ...any) ([]pointRow, error) {
	rows, err := s.DB.QueryContext(ctx, q, args...)
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
