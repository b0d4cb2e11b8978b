package ports

import (
	"context"
	"ga-route-service/internal/domain"
)

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Resolve each address; the result is keyed by the normalized address.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.Point, error)
	// Normalize returns the key Geocode uses for an address.
	Normalize(address string) string
}
