package services

import (
	"context"
	"errors"
	"sale-route-service/internal/domain"
	"slices"
	"strings"
)

func sale(id string, lat, lon float64) domain.Sale {
	return domain.Sale{ID: id, Address: id + " St", City: "Test", Coordinates: domain.Coordinates{Lat: lat, Lon: lon}}
}

func ids(sales []domain.Sale) []string {
	out := make([]string, 0, len(sales))
	for _, s := range sales {
		out = append(out, s.ID)
	}
	return out
}

// fakeRepo is a minimal SaleRepository keeping insertion order.
type fakeRepo struct {
	sales  []domain.Sale
	getErr error
	addErr error
}

func (r *fakeRepo) AddSale(_ context.Context, s domain.Sale) (string, error) {
	if r.addErr != nil {
		return "", r.addErr
	}
	if s.ID == "" {
		s.ID = "gen-" + strings.ToLower(strings.ReplaceAll(s.Address, " ", "-"))
	}
	r.sales = append(r.sales, s)
	return s.ID, nil
}

func (r *fakeRepo) ListSales(context.Context) ([]domain.Sale, error) {
	return slices.Clone(r.sales), nil
}

func (r *fakeRepo) ListSalesByOwner(_ context.Context, owner string) ([]domain.Sale, error) {
	out := []domain.Sale{}
	for _, s := range r.sales {
		if s.OwnerID == owner {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetSales returns matches in catalog order, like the real adapters.
func (r *fakeRepo) GetSales(_ context.Context, want []string) ([]domain.Sale, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := []domain.Sale{}
	for _, s := range r.sales {
		if slices.Contains(want, s.ID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteSale(context.Context, string) error { return errors.New("not implemented") }

func (r *fakeRepo) DeleteSalesByOwner(context.Context, string) (int, error) {
	return 0, errors.New("not implemented")
}

// fakeGeocoder resolves from a table and counts calls.
type fakeGeocoder struct {
	table map[string]domain.Coordinates
	err   error
	calls int
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	g.calls++
	if g.err != nil {
		return domain.Coordinates{}, g.err
	}
	c, ok := g.table[address]
	if !ok {
		return domain.Coordinates{}, errors.New("no match")
	}
	return c, nil
}

// fakeBatchGeocoder additionally answers GeocodeMany in one call.
// partialErr is returned alongside whatever the table resolved.
type fakeBatchGeocoder struct {
	fakeGeocoder
	batches    int
	partialErr error
}

func (g *fakeBatchGeocoder) GeocodeMany(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	g.batches++
	if g.err != nil {
		return nil, g.err
	}
	out := map[string]domain.Coordinates{}
	for _, a := range addresses {
		if c, ok := g.table[a]; ok {
			out[a] = c
		}
	}
	return out, g.partialErr
}
