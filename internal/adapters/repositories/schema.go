package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitSchema creates the catalog and geocode cache tables.
// The DDL is limited to types and clauses both SQLite and Postgres accept.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSalesQuery := `
	CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL,
		sale_type TEXT NOT NULL DEFAULT '',
		host TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`

	createOwnerIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_sales_owner_id
    ON sales(owner_id);
	`

	createCatalogOrderIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_sales_created_at_id
    ON sales(created_at, id);
	`

	statements := []string{
		createSalesQuery,
		createGeocodeCacheQuery,
		createOwnerIndexQuery,
		createCatalogOrderIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
