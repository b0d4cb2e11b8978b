package ports

import (
	"context"
	"ga-route-service/internal/domain"
)

// Contract for broadcasting run progress to live viewers.
type ProgressPublisher interface {
	Publish(ctx context.Context, p domain.Progress) error
}
