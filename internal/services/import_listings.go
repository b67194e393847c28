package services

import (
	"context"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/ports"
	"strings"
	"time"

	"github.com/go-kit/log/level"
)

// ImportListings stores seed sales, geocoding the ones that carry no position.
//
// Batched lookups are used when the geocoder supports them. Sales that still
// have no position afterwards are stored at the (0,0) fallback, as with
// CreateListing. It returns the number of stored sales.
func ImportListings(
	ctx context.Context,
	sales []domain.Sale,
	repo ports.SaleRepository,
	geocoder ports.Geocoder,
) (_ int, err error) {
	defer obs.Time(ctx, "services.ImportListings")(&err)

	pending := make([]string, 0, len(sales))
	for _, s := range sales {
		if !s.Geocoded() {
			pending = append(pending, s.FullAddress())
		}
	}

	resolved := map[string]domain.Coordinates{}
	batched := false
	if len(pending) > 0 && geocoder != nil {
		if bg, ok := geocoder.(ports.BatchGeocoder); ok {
			batched = true
			got, gerr := bg.GeocodeMany(ctx, pending)
			if gerr != nil {
				level.Warn(obs.LoggerFrom(ctx)).Log("msg", "batch geocoding failed", "addresses", len(pending), "resolved", len(got), "err", gerr)
			}
			for a, c := range got {
				resolved[a] = c
			}
		}
	}

	stored := 0
	for _, s := range sales {
		if !s.Geocoded() {
			if c, ok := resolved[normalizeAddress(s.FullAddress())]; ok && c.Valid() {
				s.Coordinates = c
			} else if batched {
				level.Warn(obs.LoggerFrom(ctx)).Log("msg", "no geocode result, storing sale without position", "address", s.FullAddress())
			} else {
				s.Coordinates = geocodeOrZero(ctx, geocoder, s.FullAddress())
			}
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}

		if _, err := repo.AddSale(ctx, s); err != nil {
			return stored, fmt.Errorf("import listings: store sale %q: %w", s.ID, err)
		}
		stored++
	}

	return stored, nil
}

// normalizeAddress collapses whitespace the same way geocoder adapters key their results.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
