package repositories

import (
	"encoding/json"
	"fmt"
	"ga-route-service/internal/domain"
)

type pointRow struct {
	setID string
	lat   float64
	lng   float64
	label string
}

func encodeGenes(genes []int) (string, error) {
	b, err := json.Marshal(genes)
	if err != nil {
		return "", fmt.Errorf("encode genes: %w", err)
	}
	return string(b), nil
}

func decodeGenes(s string) ([]int, error) {
	var genes []int
	if err := json.Unmarshal([]byte(s), &genes); err != nil {
		return nil, fmt.Errorf("decode genes: %w", err)
	}
	return genes, nil
}

// attachPoints appends rows (ordered by set and index) to their point sets.
func attachPoints(sets map[string]*domain.PointSet, rows []pointRow) {
	for _, r := range rows {
		ps, ok := sets[r.setID]
		if !ok {
			continue
		}
		ps.Points = append(ps.Points, domain.Point{Lat: r.lat, Lng: r.lng})
		ps.Labels = append(ps.Labels, r.label)
	}
}

// label returns the i-th label, tolerating a missing or short Labels slice.
func label(ps *domain.PointSet, i int) string {
	if i < len(ps.Labels) {
		return ps.Labels[i]
	}
	return ""
}

// sqliteTimeLayout is fixed-width so stored timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
