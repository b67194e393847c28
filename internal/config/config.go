package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process configuration read from the environment.
// Values from a .env file are expected to be loaded (godotenv) before Load is called.
type Config struct {
	Port     string
	LogLevel string

	DBDriver    string
	DBPath      string
	DatabaseURL string
	SeedPath    string

	ORSAPIKey     string
	ORSCountry    string
	ORSRatePerSec float64

	GeocodeCache    string
	GeocodeCacheTTL time.Duration
	RedisAddr       string

	SessionTTL   time.Duration
	SessionSweep string
}

// Get returns the environment value for key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Load() (Config, error) {
	cfg := Config{
		Port:         Get("PORT", "8080"),
		LogLevel:     Get("LOG_LEVEL", "info"),
		DBDriver:     Get("DB_DRIVER", "sqlite"),
		DBPath:       Get("DB_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/sales.json"),
		ORSAPIKey:    Get("ORS_API_KEY", ""),
		ORSCountry:   Get("ORS_COUNTRY", "US"),
		GeocodeCache: Get("GEOCODE_CACHE", "sql"),
		RedisAddr:    Get("REDIS_ADDR", "localhost:6379"),
		SessionSweep: Get("SESSION_SWEEP", "@every 5m"),
	}

	var err error
	if cfg.ORSRatePerSec, err = getFloat("ORS_RATE_PER_SEC", 5); err != nil {
		return Config{}, err
	}
	if cfg.GeocodeCacheTTL, err = getDuration("GEOCODE_CACHE_TTL", 720*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "pgx":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required when DB_DRIVER=pgx")
		}
	default:
		return Config{}, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.GeocodeCache {
	case "sql", "redis", "none":
	default:
		return Config{}, fmt.Errorf("load config: unsupported GEOCODE_CACHE %q", cfg.GeocodeCache)
	}

	return cfg, nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s=%q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("load config: %s must be positive, got %s", key, d)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s=%q: %w", key, raw, err)
	}
	return f, nil
}
