package ports

import (
	"context"
	"errors"
	"ga-route-service/internal/domain"
)

// ErrNotFound is returned by repositories when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Port: a boundary for storing and retrieving point sets.
type PointSetRepository interface {
	// Retrieve all point sets, oldest first.
	ListPointSets(ctx context.Context) ([]*domain.PointSet, error)
	// Retrieve one point set; ErrNotFound when the id is unknown.
	GetPointSet(ctx context.Context, id string) (*domain.PointSet, error)
	// Insert or replace a point set and its points.
	SavePointSet(ctx context.Context, ps *domain.PointSet) error
}
