package main

import (
	"context"
	"os"
	"sale-route-service/internal/adapters/repositories"
	"sale-route-service/internal/config"
	"sale-route-service/internal/platform/db"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/services"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
)

// dbtool prepares a catalog database: it creates the schema and imports the
// seed file. Seeds without coordinates are stored at (0,0); the server
// geocodes new listings, not existing ones.
func main() {
	logger := obs.NewLogger(os.Stderr, config.Get("LOG_LEVEL", "info"))

	if err := godotenv.Load(); err != nil {
		level.Info(logger).Log("msg", "no .env file found (using environment variables)")
	}

	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "dbtool failed", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := obs.WithLogger(context.Background(), logger)

	level.Info(logger).Log("msg", "initializing database schema", "driver", cfg.DBDriver)
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "schema ready")

	sales, err := repositories.LoadSeeds(cfg.SeedPath)
	if err != nil {
		return err
	}

	n, err := services.ImportListings(ctx, sales, repositories.NewSQLSaleRepository(conn), nil)
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "seeding complete", "sales", n)

	return nil
}
