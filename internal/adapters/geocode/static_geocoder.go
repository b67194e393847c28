package geocode

import (
	"context"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/ports"
	"sync"
)

// StaticGeocoder answers from a fixed address table.
// It is used for demos without an ORS key and as a test double.
type StaticGeocoder struct {
	mu    sync.Mutex
	m     map[string]domain.Coordinates
	calls int
}

func NewStaticGeocoder(table map[string]domain.Coordinates) *StaticGeocoder {
	m := make(map[string]domain.Coordinates, len(table))
	for a, c := range table {
		m[normalize(a)] = c
	}
	return &StaticGeocoder{m: m}
}

func (g *StaticGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	c, ok := g.m[normalize(address)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrNoGeocodeResult)
	}
	return c, nil
}

func (g *StaticGeocoder) GeocodeMany(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	out := make(map[string]domain.Coordinates, len(addresses))
	for _, a := range addresses {
		n := normalize(a)
		if c, ok := g.m[n]; ok {
			out[n] = c
		}
	}
	return out, nil
}

// Calls reports how many lookups (single or batched) were served.
func (g *StaticGeocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
