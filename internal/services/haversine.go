package services

import (
	"math"
	"sale-route-service/internal/domain"
)

// Earth's mean radius used by every distance in route planning.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between p and q in kilometers.
// The result is exactly symmetric and Haversine(p, p) == 0.
func Haversine(p, q domain.Coordinates) float64 {
	dLat := toRadians(q.Lat - p.Lat)
	dLon := toRadians(q.Lon - p.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(toRadians(p.Lat))*math.Cos(toRadians(q.Lat))*sinLon*sinLon
	// Rounding can push a just past 1 for antipodal points.
	a = math.Min(1, a)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// RouteDistance sums the straight-line legs of a tour, starting at origin when present.
func RouteDistance(stops []domain.Sale, origin *domain.Coordinates) float64 {
	if len(stops) == 0 {
		return 0
	}

	total := 0.0
	if origin != nil {
		total += Haversine(*origin, stops[0].Coordinates)
	}
	for i := 1; i < len(stops); i++ {
		total += Haversine(stops[i-1].Coordinates, stops[i].Coordinates)
	}
	return total
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
