package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ports"
	"os"
	"strings"
	"time"
)

type PointSeed struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

type PointSetSeed struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Points []PointSeed `json:"points"`
}

// Populate the repository with point sets from a JSON file.
// Seeds carry stable ids, so reseeding replaces rather than duplicates.
func SeedFromJSON(ctx context.Context, repo ports.PointSetRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed point sets: read %q: %w", jsonPath, err)
	}

	var data []PointSetSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed point sets: parse json: %w", err)
	}

	sets := make([]*domain.PointSet, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed point sets: item at index %d: id cannot be empty", i+1)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed point sets: item %q: name cannot be empty", id)
		}

		if len(item.Points) == 0 {
			return fmt.Errorf("seed point sets: item %q: points cannot be empty", id)
		}

		ps := &domain.PointSet{
			ID:        id,
			Name:      name,
			Points:    make([]domain.Point, 0, len(item.Points)),
			Labels:    make([]string, 0, len(item.Points)),
			CreatedAt: time.Now().UTC(),
		}
		for j, p := range item.Points {
			pt := domain.Point{Lat: p.Lat, Lng: p.Lng}
			if !pt.Valid() {
				return fmt.Errorf("seed point sets: item %q: point %d out of range: %+v", id, j, pt)
			}
			ps.Points = append(ps.Points, pt)
			ps.Labels = append(ps.Labels, strings.TrimSpace(p.Label))
		}
		sets = append(sets, ps)
	}

	for _, ps := range sets {
		if err := repo.SavePointSet(ctx, ps); err != nil {
			return fmt.Errorf("seed point sets: save %q: %w", ps.ID, err)
		}
	}

	return nil
}
