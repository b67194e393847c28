package services

import (
	"math/rand"
	"sale-route-service/internal/domain"
	"slices"
	"testing"
)

func TestOptimizeRouteEmptyAndSingle(t *testing.T) {
	if got := OptimizeRoute(nil, nil); got == nil || len(got) != 0 {
		t.Fatalf("nil input should give an empty route, got %#v", got)
	}

	origin := domain.Coordinates{Lat: 10, Lon: 10}
	one := []domain.Sale{sale("only", 0, 3)}
	got := OptimizeRoute(one, &origin)
	if !slices.Equal(ids(got), []string{"only"}) {
		t.Fatalf("single stop route = %v", ids(got))
	}
}

func TestOptimizeRouteGreedyWithoutOrigin(t *testing.T) {
	// Starts at the first input stop, not the one nearest anything.
	stops := []domain.Sale{sale("C", 0, 3), sale("A", 0, 0.0001), sale("B", 0, 1)}

	got := ids(OptimizeRoute(stops, nil))
	want := []string{"C", "B", "A"}
	if !slices.Equal(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}
}

func TestOptimizeRouteStartsNearestOrigin(t *testing.T) {
	stops := []domain.Sale{sale("C", 0, 3), sale("B", 0, 1), sale("A", 0, 0.0001)}
	origin := domain.Coordinates{}

	got := ids(OptimizeRoute(stops, &origin))
	want := []string{"A", "B", "C"}
	if !slices.Equal(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}
}

func TestOptimizeRouteTieGoesToFirstInInput(t *testing.T) {
	origin := domain.Coordinates{}
	east, west := sale("east", 0, 1), sale("west", 0, -1)

	if got := ids(OptimizeRoute([]domain.Sale{east, west}, &origin)); got[0] != "east" {
		t.Fatalf("tie should pick the first candidate, got %v", got)
	}
	if got := ids(OptimizeRoute([]domain.Sale{west, east}, &origin)); got[0] != "west" {
		t.Fatalf("tie should pick the first candidate, got %v", got)
	}

	// Mid-tour ties behave the same way.
	start := sale("start", 0, 0)
	got := ids(OptimizeRoute([]domain.Sale{start, west, east}, nil))
	if !slices.Equal(got, []string{"start", "west", "east"}) {
		t.Fatalf("route = %v", got)
	}
}

func TestOptimizeRouteIdenticalAndFallbackCoordinates(t *testing.T) {
	// Sales at the (0,0) fallback are ordinary stops; identical positions keep input order.
	stops := []domain.Sale{
		sale("madison", 43.0731, -89.4012),
		sale("unknown1", 0, 0),
		sale("twin", 43.0731, -89.4012),
		sale("unknown2", 0, 0),
	}

	got := ids(OptimizeRoute(stops, nil))
	want := []string{"madison", "twin", "unknown1", "unknown2"}
	if !slices.Equal(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}
}

func TestOptimizeRouteIsPermutationAndPure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	stops := make([]domain.Sale, 0, 40)
	for i := range 40 {
		stops = append(stops, sale(string(rune('a'+i%26))+string(rune('0'+i/26)), 42+rng.Float64(), -90+rng.Float64()))
	}
	before := slices.Clone(stops)
	origin := domain.Coordinates{Lat: 42.5, Lon: -89.5}

	first := OptimizeRoute(stops, &origin)
	second := OptimizeRoute(stops, &origin)

	if !slices.Equal(ids(first), ids(second)) {
		t.Fatalf("route is not deterministic")
	}
	if !slices.EqualFunc(stops, before, func(a, b domain.Sale) bool { return a.ID == b.ID }) {
		t.Fatalf("input slice was modified")
	}

	got, want := ids(first), ids(stops)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Fatalf("route is not a permutation of the input")
	}

	// Every step moves to the closest remaining stop.
	remaining := slices.Clone(first)
	current := origin
	for len(remaining) > 0 {
		d := Haversine(current, remaining[0].Coordinates)
		for _, r := range remaining[1:] {
			if Haversine(current, r.Coordinates) < d {
				t.Fatalf("stop %s chosen while a closer one was available", remaining[0].ID)
			}
		}
		current = remaining[0].Coordinates
		remaining = remaining[1:]
	}
}
