package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sale-route-service/internal/adapters/cache"
	"sale-route-service/internal/adapters/geocode"
	"sale-route-service/internal/adapters/repositories"
	"sale-route-service/internal/api"
	"sale-route-service/internal/config"
	"sale-route-service/internal/platform/db"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/ports"
	"sale-route-service/internal/services"
	"sale-route-service/internal/session"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	logger := obs.NewLogger(os.Stderr, config.Get("LOG_LEVEL", "info"))
	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "server exited", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	if err := godotenv.Load(); err != nil {
		level.Info(logger).Log("msg", "no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = obs.WithLogger(ctx, logger)

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}

	geocodeCache, closeCache, err := newGeocodeCache(ctx, cfg, conn)
	if err != nil {
		return err
	}
	defer closeCache()

	geocoder, err := newGeocoder(cfg, geocodeCache)
	if err != nil {
		return err
	}
	if geocoder == nil {
		level.Warn(logger).Log("msg", "ORS_API_KEY not set, new listings are stored without a position")
	}

	repo := repositories.NewSQLSaleRepository(conn)

	// Seed demo data on first start for local runs.
	if err := seedIfEmpty(ctx, logger, repo, geocoder, cfg.SeedPath); err != nil {
		return err
	}

	sessions := session.NewStore(cfg.SessionTTL)
	sweeper, err := session.StartSweeper(sessions, cfg.SessionSweep, logger)
	if err != nil {
		return err
	}
	defer func() { <-sweeper.Stop().Done() }()

	router := api.NewRouter(repo, geocoder, sessions, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Listing creation may wait on the geocoding provider.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		level.Info(logger).Log("msg", "server listening", "addr", srv.Addr, "db", cfg.DBDriver, "geocode_cache", cfg.GeocodeCache)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		level.Info(logger).Log("msg", "shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newGeocodeCache selects the persistent geocode cache. The returned func
// releases any connection the cache owns.
func newGeocodeCache(ctx context.Context, cfg config.Config, conn *sqlx.DB) (ports.GeocodeCache, func(), error) {
	switch cfg.GeocodeCache {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("geocode cache: ping redis at %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL), func() { client.Close() }, nil
	case "sql":
		return cache.NewSQLGeocodeCache(conn), func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

// newGeocoder returns nil when no ORS key is configured.
func newGeocoder(cfg config.Config, c ports.GeocodeCache) (ports.Geocoder, error) {
	if cfg.ORSAPIKey == "" {
		return nil, nil
	}

	opts := []geocode.Option{
		geocode.WithCountry(cfg.ORSCountry),
		geocode.WithRate(cfg.ORSRatePerSec),
	}
	if c != nil {
		opts = append(opts, geocode.WithCache(c))
	}

	g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, opts...)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func seedIfEmpty(
	ctx context.Context,
	logger log.Logger,
	repo ports.SaleRepository,
	geocoder ports.Geocoder,
	seedPath string,
) error {
	existing, err := repo.ListSales(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	sales, err := repositories.LoadSeeds(seedPath)
	if errors.Is(err, fs.ErrNotExist) {
		level.Info(logger).Log("msg", "no seed file, starting with an empty catalog", "path", seedPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	n, err := services.ImportListings(ctx, sales, repo, geocoder)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	level.Info(logger).Log("msg", "seeded catalog", "sales", n, "path", seedPath)
	return nil
}
