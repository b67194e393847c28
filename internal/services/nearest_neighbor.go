package services

import (
	"math"
	"sale-route-service/internal/domain"
	"slices"
)

// OptimizeRoute orders stops with a greedy nearest-neighbor heuristic.
//
// The tour starts at the stop nearest to origin, or at the first stop when
// origin is nil, then repeatedly visits the closest unvisited stop by
// haversine distance. Ties go to the candidate that comes first in input
// order. There is no global improvement pass (no 2-opt).
//
// The result is a permutation of stops; the input slice is not modified.
// A single stop is returned as is, an empty input yields an empty route.
func OptimizeRoute(stops []domain.Sale, origin *domain.Coordinates) []domain.Sale {
	remaining := slices.Clone(stops)
	if len(remaining) <= 1 {
		if remaining == nil {
			return []domain.Sale{}
		}
		return remaining
	}

	start := 0
	if origin != nil {
		start = nearestIndex(*origin, remaining)
	}

	route := make([]domain.Sale, 0, len(remaining))
	current := remaining[start]
	remaining = slices.Delete(remaining, start, start+1)
	route = append(route, current)

	// Greedy step: always move to the closest stop not yet visited.
	for len(remaining) > 0 {
		next := nearestIndex(current.Coordinates, remaining)
		current = remaining[next]
		remaining = slices.Delete(remaining, next, next+1)
		route = append(route, current)
	}

	return route
}

// nearestIndex scans candidates once and returns the index of the closest one.
// The strict comparison keeps the first of equally distant candidates.
func nearestIndex(from domain.Coordinates, candidates []domain.Sale) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range candidates {
		if d := Haversine(from, c.Coordinates); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
