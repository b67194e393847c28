package services

import (
	"math"
	"sale-route-service/internal/domain"
	"testing"
)

func TestMapBounds(t *testing.T) {
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

	if _, ok := MapBounds(nil, nil); ok {
		t.Fatalf("no points should give no bounds")
	}
	if _, ok := MapBounds([]domain.Sale{sale("unplaced", 0, 0)}, nil); ok {
		t.Fatalf("(0,0) fallback sales should not count")
	}

	sales := []domain.Sale{
		sale("verona", 42.9908, -89.5332),
		sale("monona", 43.0622, -89.334),
		sale("unplaced", 0, 0),
	}
	b, ok := MapBounds(sales, nil)
	if !ok {
		t.Fatalf("expected bounds")
	}
	if !near(b.South, 42.9908) || !near(b.North, 43.0622) || !near(b.West, -89.5332) || !near(b.East, -89.334) {
		t.Fatalf("bounds = %+v", b)
	}

	origin := domain.Coordinates{Lat: 43.2, Lon: -89.6}
	b, _ = MapBounds(sales, &origin)
	if !near(b.North, 43.2) || !near(b.West, -89.6) {
		t.Fatalf("origin not included: %+v", b)
	}

	// The origin alone is enough to frame.
	if _, ok := MapBounds(nil, &origin); !ok {
		t.Fatalf("origin-only bounds missing")
	}
}
