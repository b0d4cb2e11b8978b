package services

import (
	"context"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ports"
	"sort"
	"strings"
	"sync"
)

type memPointSets struct {
	mu   sync.Mutex
	sets map[string]*domain.PointSet
}

func newMemPointSets(sets ...*domain.PointSet) *memPointSets {
	m := &memPointSets{sets: make(map[string]*domain.PointSet)}
	for _, ps := range sets {
		m.sets[ps.ID] = ps
	}
	return m
}

func (m *memPointSets) ListPointSets(ctx context.Context) ([]*domain.PointSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.PointSet, 0, len(m.sets))
	for _, ps := range m.sets {
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memPointSets) GetPointSet(ctx context.Context, id string) (*domain.PointSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps, ok := m.sets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return ps, nil
}

func (m *memPointSets) SavePointSet(ctx context.Context, ps *domain.PointSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sets[ps.ID] = ps
	return nil
}

type memResults struct {
	mu      sync.Mutex
	results map[string]domain.RunResult
}

func newMemResults() *memResults {
	return &memResults{results: make(map[string]domain.RunResult)}
}

func (m *memResults) SaveResult(ctx context.Context, r domain.RunResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[r.RunID] = r
	return nil
}

func (m *memResults) ListResults(ctx context.Context, pointSetID string) ([]domain.RunResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.RunResult
	for _, r := range m.results {
		if r.PointSetID == pointSetID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

func (m *memResults) get(runID string) (domain.RunResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.results[runID]
	return r, ok
}

type recordingPublisher struct {
	mu       sync.Mutex
	progress []domain.Progress
}

func (p *recordingPublisher) Publish(ctx context.Context, progress domain.Progress) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.progress = append(p.progress, progress)
	return nil
}

func (p *recordingPublisher) all() []domain.Progress {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]domain.Progress(nil), p.progress...)
}

type fakeGeocoder struct {
	known map[string]domain.Point
	calls int
}

func (g *fakeGeocoder) Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

func (g *fakeGeocoder) Geocode(ctx context.Context, addresses []string) (map[string]domain.Point, error) {
	g.calls++

	out := make(map[string]domain.Point)
	for _, a := range addresses {
		if p, ok := g.known[g.Normalize(a)]; ok {
			out[g.Normalize(a)] = p
		}
	}
	return out, nil
}

// squarePoints are the corners of a square with 1 km sides on the equator.
func squarePoints() []domain.Point {
	const side = 1 / 111.19492664455873
	return []domain.Point{
		{Lat: 0, Lng: 0},
		{Lat: side, Lng: side},
		{Lat: 0, Lng: side},
		{Lat: side, Lng: 0},
	}
}
