package ports

import (
	"context"
	"errors"
	"sale-route-service/internal/domain"
)

var (
	// ErrNoGeocodeResult is returned when the provider has no match for an address.
	ErrNoGeocodeResult = errors.New("no geocode result")
	// ErrGeocoderUnavailable is returned when no geocoding provider is configured.
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
)

// Contract for resolving a free-form address to coordinates.
type Geocoder interface {
	// Return the best match for address, or ErrNoGeocodeResult.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Optional extension of Geocoder that resolves addresses in one call.
type BatchGeocoder interface {
	Geocoder
	// Return coordinates keyed by the normalized address.
	// Addresses without a match are absent from the result rather than an error.
	// On partial failure the resolved addresses are returned along with the error.
	GeocodeMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}
