package services

import (
	"sale-route-service/internal/domain"

	"github.com/golang/geo/s2"
)

// Bounds is a latitude/longitude box in degrees. When the box crosses the
// antimeridian West is greater than East.
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// MapBounds returns the smallest box holding every positioned sale and the
// origin, so a map can be framed around a selection. Sales at the (0,0)
// fallback are left out. ok is false when there is nothing to frame.
func MapBounds(sales []domain.Sale, origin *domain.Coordinates) (_ Bounds, ok bool) {
	rect := s2.EmptyRect()

	if origin != nil && origin.Valid() {
		rect = rect.AddPoint(origin.LatLng())
	}
	for _, s := range sales {
		if !s.Geocoded() || !s.Coordinates.Valid() {
			continue
		}
		rect = rect.AddPoint(s.Coordinates.LatLng())
	}

	if rect.IsEmpty() {
		return Bounds{}, false
	}

	lo, hi := rect.Lo(), rect.Hi()
	return Bounds{
		South: lo.Lat.Degrees(),
		West:  lo.Lng.Degrees(),
		North: hi.Lat.Degrees(),
		East:  hi.Lng.Degrees(),
	}, true
}
