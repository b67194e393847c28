package repositories

import (
	"context"
	"errors"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQL-backed implementation of the SaleRepository port.
// Queries are written with "?" placeholders and rebound per driver,
// so the same repository serves SQLite and Postgres.
type SQLSaleRepository struct{ DB *sqlx.DB }

func NewSQLSaleRepository(db *sqlx.DB) *SQLSaleRepository {
	return &SQLSaleRepository{DB: db}
}

type saleRow struct {
	ID        string  `db:"id"`
	OwnerID   string  `db:"owner_id"`
	City      string  `db:"city"`
	SaleType  string  `db:"sale_type"`
	Host      string  `db:"host"`
	Address   string  `db:"address"`
	Lat       float64 `db:"lat"`
	Lon       float64 `db:"lon"`
	CreatedAt int64   `db:"created_at"`
}

const saleColumns = `id, owner_id, city, sale_type, host, address, lat, lon, created_at`

func (r saleRow) toDomain() domain.Sale {
	return domain.Sale{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		City:        r.City,
		Type:        r.SaleType,
		Host:        r.Host,
		Address:     r.Address,
		Coordinates: domain.Coordinates{Lat: r.Lat, Lon: r.Lon},
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
	}
}

func toDomainSales(rows []saleRow) []domain.Sale {
	out := make([]domain.Sale, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

// Store a sale, replacing any listing with the same id.
func (s *SQLSaleRepository) AddSale(ctx context.Context, sale domain.Sale) (_ string, err error) {
	defer obs.Time(ctx, "sales.repo.AddSale")(&err)

	if s.DB == nil {
		return "", errors.New("sql sale repository: DB is nil")
	}

	id := strings.TrimSpace(sale.ID)
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := sale.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := s.DB.Rebind(`
	INSERT INTO sales (` + saleColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET owner_id = excluded.owner_id,
		city = excluded.city,
		sale_type = excluded.sale_type,
		host = excluded.host,
		address = excluded.address,
		lat = excluded.lat,
		lon = excluded.lon;
	`)

	_, err = s.DB.ExecContext(ctx, query,
		id,
		sale.OwnerID,
		sale.City,
		sale.Type,
		sale.Host,
		sale.Address,
		sale.Coordinates.Lat,
		sale.Coordinates.Lon,
		createdAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("add sale: insert sale %q: %w", id, err)
	}

	return id, nil
}

// Return all sales in catalog order.
func (s *SQLSaleRepository) ListSales(ctx context.Context) (_ []domain.Sale, err error) {
	defer obs.Time(ctx, "sales.repo.ListSales")(&err)

	if s.DB == nil {
		return nil, errors.New("sql sale repository: DB is nil")
	}

	var rows []saleRow
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at, id;`
	if err := s.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list sales: query sales table: %w", err)
	}

	return toDomainSales(rows), nil
}

func (s *SQLSaleRepository) ListSalesByOwner(ctx context.Context, ownerID string) (_ []domain.Sale, err error) {
	defer obs.Time(ctx, "sales.repo.ListSalesByOwner")(&err)

	if s.DB == nil {
		return nil, errors.New("sql sale repository: DB is nil")
	}

	var rows []saleRow
	query := s.DB.Rebind(`SELECT ` + saleColumns + ` FROM sales WHERE owner_id = ? ORDER BY created_at, id;`)
	if err := s.DB.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list sales for owner %q: query sales table: %w", ownerID, err)
	}

	return toDomainSales(rows), nil
}

// Resolve sales by id. Unknown ids are skipped.
func (s *SQLSaleRepository) GetSales(ctx context.Context, ids []string) (_ []domain.Sale, err error) {
	defer obs.Time(ctx, "sales.repo.GetSales")(&err)

	if s.DB == nil {
		return nil, errors.New("sql sale repository: DB is nil")
	}

	if len(ids) == 0 {
		return []domain.Sale{}, nil
	}

	// sqlx.In expands the slice into one placeholder per id; values stay parameterized.
	query, args, err := sqlx.In(`SELECT `+saleColumns+` FROM sales WHERE id IN (?) ORDER BY created_at, id;`, ids)
	if err != nil {
		return nil, fmt.Errorf("get sales: build query: %w", err)
	}

	var rows []saleRow
	if err := s.DB.SelectContext(ctx, &rows, s.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get sales: query sales table: %w", err)
	}

	return toDomainSales(rows), nil
}

func (s *SQLSaleRepository) DeleteSale(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "sales.repo.DeleteSale")(&err)

	if s.DB == nil {
		return errors.New("sql sale repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM sales WHERE id = ?;`), id)
	if err != nil {
		return fmt.Errorf("delete sale %q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sale %q: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete sale %q: %w", id, ports.ErrSaleNotFound)
	}

	return nil
}

// Delete every sale of an owner in a single transaction.
func (s *SQLSaleRepository) DeleteSalesByOwner(ctx context.Context, ownerID string) (_ int, err error) {
	defer obs.Time(ctx, "sales.repo.DeleteSalesByOwner")(&err)

	if s.DB == nil {
		return 0, errors.New("sql sale repository: DB is nil")
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("delete owner sales: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM sales WHERE owner_id = ?;`), ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete owner sales %q: %w", ownerID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete owner sales %q: rows affected: %w", ownerID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("delete owner sales: commit tx: %w", err)
	}

	return int(n), nil
}
