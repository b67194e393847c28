package ports

import (
	"context"
	"errors"
	"sale-route-service/internal/domain"
)

var ErrSaleNotFound = errors.New("sale not found")

// Port: a boundary for storing and retrieving Sale listings.
type SaleRepository interface {
	// Store a sale and return its id. A sale without an id gets a generated one;
	// a sale with an existing id replaces the stored listing.
	AddSale(ctx context.Context, sale domain.Sale) (string, error)
	// Retrieve all sales in catalog order (creation time, then id).
	ListSales(ctx context.Context) ([]domain.Sale, error)
	ListSalesByOwner(ctx context.Context, ownerID string) ([]domain.Sale, error)
	// Resolve a batch of ids. Unknown ids are absent from the result.
	GetSales(ctx context.Context, ids []string) ([]domain.Sale, error)
	// Delete one sale, or ErrSaleNotFound.
	DeleteSale(ctx context.Context, id string) error
	// Delete every sale of an owner and return how many were removed.
	DeleteSalesByOwner(ctx context.Context, ownerID string) (int, error)
}
