package services

import (
	"context"
	"errors"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/ports"
	"strings"
	"time"

	"github.com/go-kit/log/level"
)

type ListingRequest struct {
	OwnerID string
	City    string
	Type    string
	Host    string
	Address string
}

// CreateListing geocodes and stores a new sale.
//
// A listing whose address cannot be geocoded is still stored, at the (0,0)
// fallback position. Route planning treats such a sale as an ordinary stop.
func CreateListing(
	ctx context.Context,
	req ListingRequest,
	repo ports.SaleRepository,
	geocoder ports.Geocoder,
) (_ *domain.Sale, err error) {
	defer obs.Time(ctx, "services.CreateListing")(&err)

	sale := domain.Sale{
		OwnerID:   strings.TrimSpace(req.OwnerID),
		City:      strings.TrimSpace(req.City),
		Type:      strings.TrimSpace(req.Type),
		Host:      strings.TrimSpace(req.Host),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: time.Now().UTC(),
	}

	if sale.Address == "" {
		return nil, fmt.Errorf("create listing: %w: address is required", ErrInvalidListing)
	}
	if sale.City == "" {
		return nil, fmt.Errorf("create listing: %w: city is required", ErrInvalidListing)
	}
	if sale.Host == "" {
		return nil, fmt.Errorf("create listing: %w: host is required", ErrInvalidListing)
	}

	sale.Coordinates = geocodeOrZero(ctx, geocoder, sale.FullAddress())

	id, err := repo.AddSale(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("create listing: store sale: %w", err)
	}
	sale.ID = id

	return &sale, nil
}

func geocodeOrZero(ctx context.Context, geocoder ports.Geocoder, address string) domain.Coordinates {
	if geocoder == nil {
		geocoder = unavailableGeocoder{}
	}

	coords, err := geocoder.Geocode(ctx, address)
	if err == nil && coords.Valid() {
		return coords
	}

	if err == nil {
		err = fmt.Errorf("provider returned invalid coordinates %v", coords)
	}
	lvl := level.Warn
	if errors.Is(err, ports.ErrGeocoderUnavailable) {
		lvl = level.Info
	}
	lvl(obs.LoggerFrom(ctx)).Log(
		"msg", "geocoding failed, storing sale without position",
		"address", address,
		"err", err,
	)
	return domain.Coordinates{}
}

type unavailableGeocoder struct{}

func (unavailableGeocoder) Geocode(context.Context, string) (domain.Coordinates, error) {
	return domain.Coordinates{}, ports.ErrGeocoderUnavailable
}
