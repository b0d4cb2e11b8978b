package services

import (
	"context"
	"errors"
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ports"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

type CreatePointSetRequest struct {
	Name string
	// Exactly one of Points or Addresses is set.
	Points    []domain.Point
	Labels    []string
	Addresses []string
}

// PointSetService manages the stored point sets runs are configured from.
type PointSetService struct {
	Repo       ports.PointSetRepository
	ResultRepo ports.ResultRepository
	Geocoder   ports.Geocoder // nil disables address input
	MaxPoints  int

	now func() time.Time
}

func NewPointSetService(
	repo ports.PointSetRepository,
	results ports.ResultRepository,
	geocoder ports.Geocoder,
	maxPoints int,
) *PointSetService {
	return &PointSetService{
		Repo:       repo,
		ResultRepo: results,
		Geocoder:   geocoder,
		MaxPoints:  maxPoints,
		now:        time.Now,
	}
}

// Create validates, optionally geocodes, and stores a new point set.
func (s *PointSetService) Create(ctx context.Context, req CreatePointSetRequest) (*domain.PointSet, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("create point set: %w: name is required", ErrInvalidInput)
	}

	hasPoints := len(req.Points) > 0
	hasAddresses := len(req.Addresses) > 0
	if hasPoints == hasAddresses {
		return nil, fmt.Errorf("create point set: %w: provide either points or addresses", ErrInvalidInput)
	}

	points := req.Points
	labels := req.Labels
	if hasAddresses {
		var err error
		points, labels, err = s.geocode(ctx, req.Addresses)
		if err != nil {
			return nil, fmt.Errorf("create point set: %w", err)
		}
	}

	if len(labels) != 0 && len(labels) != len(points) {
		return nil, fmt.Errorf("create point set: %w: %d labels for %d points", ErrInvalidInput, len(labels), len(points))
	}
	if err := ValidatePoints(points, s.MaxPoints); err != nil {
		return nil, fmt.Errorf("create point set: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("create point set: new id: %w", err)
	}

	ps := &domain.PointSet{
		ID:        id.String(),
		Name:      name,
		Points:    points,
		Labels:    labels,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.SavePointSet(ctx, ps); err != nil {
		return nil, fmt.Errorf("create point set: save: %w", err)
	}

	return ps, nil
}

func (s *PointSetService) geocode(ctx context.Context, addresses []string) ([]domain.Point, []string, error) {
	if s.Geocoder == nil {
		return nil, nil, ErrGeocoderUnavailable
	}
	if s.MaxPoints > 0 && len(addresses) > s.MaxPoints {
		return nil, nil, fmt.Errorf("%w: at most %d points allowed, got %d", ErrInvalidInput, s.MaxPoints, len(addresses))
	}

	for i, a := range addresses {
		if strings.TrimSpace(a) == "" {
			return nil, nil, fmt.Errorf("%w: address %d is blank", ErrInvalidInput, i)
		}
	}

	resolved, err := s.Geocoder.Geocode(ctx, addresses)
	if err != nil {
		return nil, nil, fmt.Errorf("geocode: %w", err)
	}

	points := make([]domain.Point, 0, len(addresses))
	labels := make([]string, 0, len(addresses))
	for _, a := range addresses {
		p, ok := resolved[s.Geocoder.Normalize(a)]
		if !ok {
			return nil, nil, fmt.Errorf("%w: address %q could not be resolved", ErrInvalidInput, a)
		}
		points = append(points, p)
		labels = append(labels, strings.TrimSpace(a))
	}

	return points, labels, nil
}

func (s *PointSetService) List(ctx context.Context) ([]*domain.PointSet, error) {
	sets, err := s.Repo.ListPointSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list point sets: %w", err)
	}
	return sets, nil
}

func (s *PointSetService) Get(ctx context.Context, id string) (*domain.PointSet, error) {
	ps, err := s.Repo.GetPointSet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get point set id=%s: %w", id, err)
	}
	return ps, nil
}

// Results lists the recorded runs of a point set, best first.
func (s *PointSetService) Results(ctx context.Context, id string) ([]domain.RunResult, error) {
	if _, err := s.Repo.GetPointSet(ctx, id); err != nil {
		return nil, fmt.Errorf("list results id=%s: %w", id, err)
	}

	results, err := s.ResultRepo.ListResults(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list results id=%s: %w", id, err)
	}
	return results, nil
}

// IsNotFound reports whether err means a missing point set or run.
func IsNotFound(err error) bool {
	return errors.Is(err, ports.ErrNotFound) || errors.Is(err, ErrRunNotFound)
}
