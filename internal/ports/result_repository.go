package ports

import (
	"context"
	"ga-route-service/internal/domain"
)

// Port: a log of the best tours runs reached when they stopped.
type ResultRepository interface {
	SaveResult(ctx context.Context, r domain.RunResult) error
	// Retrieve results for a point set, best distance first.
	ListResults(ctx context.Context, pointSetID string) ([]domain.RunResult, error)
}
