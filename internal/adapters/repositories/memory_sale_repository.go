package repositories

import (
	"context"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/ports"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemorySaleRepository is an in-process SaleRepository.
// It keeps insertion order as catalog order and is safe for concurrent use.
type MemorySaleRepository struct {
	mu    sync.RWMutex
	sales []domain.Sale
}

func NewMemorySaleRepository(sales ...domain.Sale) *MemorySaleRepository {
	r := &MemorySaleRepository{}
	for _, s := range sales {
		_, _ = r.AddSale(context.Background(), s)
	}
	return r
}

func (r *MemorySaleRepository) AddSale(_ context.Context, sale domain.Sale) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sale.ID) == "" {
		sale.ID = uuid.NewString()
	}

	for i := range r.sales {
		if r.sales[i].ID == sale.ID {
			r.sales[i] = sale
			return sale.ID, nil
		}
	}
	r.sales = append(r.sales, sale)
	return sale.ID, nil
}

func (r *MemorySaleRepository) ListSales(context.Context) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.sales), nil
}

func (r *MemorySaleRepository) ListSalesByOwner(_ context.Context, ownerID string) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Sale{}
	for _, s := range r.sales {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemorySaleRepository) GetSales(_ context.Context, ids []string) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := []domain.Sale{}
	for _, s := range r.sales {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemorySaleRepository) DeleteSale(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.sales, func(s domain.Sale) bool { return s.ID == id })
	if i < 0 {
		return fmt.Errorf("delete sale %q: %w", id, ports.ErrSaleNotFound)
	}
	r.sales = slices.Delete(r.sales, i, i+1)
	return nil
}

func (r *MemorySaleRepository) DeleteSalesByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.sales)
	r.sales = slices.DeleteFunc(r.sales, func(s domain.Sale) bool { return s.OwnerID == ownerID })
	return before - len(r.sales), nil
}
