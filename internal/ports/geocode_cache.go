package ports

import (
	"context"
	"sale-route-service/internal/domain"
)

// Persistent address -> coordinates cache sitting in front of a Geocoder.
// Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
