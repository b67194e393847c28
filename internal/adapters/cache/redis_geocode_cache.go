package cache

import (
	"context"
	"errors"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "geocode:"

// RedisGeocodeCache keeps geocode results in Redis as "lat,lon" strings.
// Entries expire after TTL; a zero TTL keeps them forever.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl, Prefix: defaultRedisKeyPrefix}
}

func (c *RedisGeocodeCache) key(address string) string {
	return c.Prefix + address
}

func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, a := range uniq {
		keys[i] = c.key(a)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	logger := obs.LoggerFrom(ctx)
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		coords, err := parseCachedCoordinates(s)
		if err != nil {
			// A corrupt entry is treated as a miss and overwritten on the next fetch.
			_ = level.Warn(logger).Log("msg", "geocode cache: bad redis entry", "key", keys[i], "err", err)
			continue
		}
		out[uniq[i]] = coords
	}

	return out, nil
}

func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.redis.PutMany")(&err)

	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for addr, coords := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}
		pipe.Set(ctx, c.key(addr), formatCachedCoordinates(coords), c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}

	return nil
}

func formatCachedCoordinates(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'g', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'g', -1, 64)
}

func parseCachedCoordinates(s string) (domain.Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing separator in %q", s)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lon: %w", err)
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("coordinates out of range: %s", s)
	}
	return c, nil
}
