package services

import (
	"sale-route-service/internal/domain"
	"testing"
)

func TestBuildDirectionsURL(t *testing.T) {
	a, b, c := sale("A", 0, 0), sale("B", 0, 1), sale("C", 0, 3)
	origin := &domain.Coordinates{Lat: 43.0731, Lon: -89.4012}

	tests := []struct {
		name   string
		stops  []domain.Sale
		origin *domain.Coordinates
		want   string
	}{
		{"empty", nil, nil, ""},
		{"empty with origin", []domain.Sale{}, origin, ""},
		{
			"one stop",
			[]domain.Sale{b}, nil,
			"https://www.google.com/maps/dir/?api=1&destination=0.0,1.0&travelmode=driving",
		},
		{
			"one stop with origin",
			[]domain.Sale{b}, origin,
			"https://www.google.com/maps/dir/?api=1&origin=43.0731,-89.4012&destination=0.0,1.0&travelmode=driving",
		},
		{
			"two stops",
			[]domain.Sale{a, c}, nil,
			"https://www.google.com/maps/dir/?api=1&origin=0.0,0.0&destination=0.0,3.0&travelmode=driving",
		},
		{
			"two stops with origin",
			[]domain.Sale{a, c}, origin,
			"https://www.google.com/maps/dir/?api=1&origin=43.0731,-89.4012&destination=0.0,3.0&waypoints=0.0,0.0&travelmode=driving",
		},
		{
			"three stops",
			[]domain.Sale{a, b, c}, nil,
			"https://www.google.com/maps/dir/?api=1&origin=0.0,0.0&destination=0.0,3.0&waypoints=0.0,1.0&travelmode=driving",
		},
		{
			"three stops with origin",
			[]domain.Sale{a, b, c}, origin,
			"https://www.google.com/maps/dir/?api=1&origin=43.0731,-89.4012&destination=0.0,3.0&waypoints=0.0,0.0%7C0.0,1.0&travelmode=driving",
		},
		{
			"small coordinates",
			[]domain.Sale{sale("tiny", 0.0001, -0.00015)}, nil,
			"https://www.google.com/maps/dir/?api=1&destination=1.0E-4,-1.5E-4&travelmode=driving",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildDirectionsURL(tc.stops, tc.origin)
			if got != tc.want {
				t.Fatalf("url mismatch\n got: %s\nwant: %s", got, tc.want)
			}
			if again := BuildDirectionsURL(tc.stops, tc.origin); again != got {
				t.Fatalf("url not deterministic: %s vs %s", got, again)
			}
		})
	}
}
