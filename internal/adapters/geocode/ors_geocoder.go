package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/ports"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://api.openrouteservice.org"
	defaultCountry     = "US"
	defaultConcurrency = 4
)

// ORSGeocoder implements BatchGeocoder using OpenRouteService (/geocode/search).
//
// Lookups go through an optional persistent GeocodeCache first. Misses are
// fetched concurrently under a client-side rate limit and written back to the
// cache. The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	country     string
	concurrency int
	limiter     *rate.Limiter
	cache       ports.GeocodeCache
}

type Option func(*ORSGeocoder)

func WithBaseURL(u string) Option {
	return func(o *ORSGeocoder) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithCountry restricts results to one ISO country code; empty disables the boundary.
func WithCountry(code string) Option {
	return func(o *ORSGeocoder) { o.country = code }
}

// WithRate caps outgoing requests per second. Zero or less disables the limit.
func WithRate(perSec float64) Option {
	return func(o *ORSGeocoder) {
		if perSec <= 0 {
			o.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(perSec)
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *ORSGeocoder) { o.session = c }
}

func WithCache(c ports.GeocodeCache) Option {
	return func(o *ORSGeocoder) { o.cache = c }
}

func NewORSGeocoder(apiKey string, opts ...Option) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		country:     defaultCountry,
		concurrency: defaultConcurrency,
		limiter:     rate.NewLimiter(rate.Limit(5), 5),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Delegate to the batched path to reuse caching.
func (g *ORSGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	results, err := g.GeocodeMany(ctx, []string{norm})
	c, ok := results[norm]
	if err != nil && !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, ports.ErrNoGeocodeResult)
	}
	return c, nil
}

// GeocodeMany resolves many addresses, keyed by normalized address.
// Addresses the provider has no match for are absent from the result.
// When some lookups fail the resolved ones are still cached and returned,
// together with an error joining the failures.
func (g *ORSGeocoder) GeocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.GeocodeMany")(&err)

	seen := make(map[string]struct{}, len(addresses))
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := normalize(a)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	if len(uniq) == 0 {
		return out, nil
	}

	logger := obs.LoggerFrom(ctx)

	// Check the persistent cache before issuing external API calls.
	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, uniq)
		if err != nil {
			level.Warn(logger).Log("msg", "geocode cache read failed", "err", err)
		}
		for a, c := range hits {
			out[a] = c
		}
		obs.GeocodeLookups.WithLabelValues("cache_hit").Add(float64(len(hits)))
	}

	misses := make([]string, 0, len(uniq))
	for _, a := range uniq {
		if _, ok := out[a]; !ok {
			misses = append(misses, a)
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	var (
		mu       sync.Mutex
		fresh    = make(map[string]domain.Coordinates, len(misses))
		failures []error
	)

	// Lookups are independent: one failed address must not cancel the rest.
	var eg errgroup.Group
	eg.SetLimit(g.concurrency)
	for _, a := range misses {
		eg.Go(func() error {
			c, err := g.lookup(ctx, a)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ports.ErrNoGeocodeResult):
				obs.GeocodeLookups.WithLabelValues("not_found").Inc()
			case err != nil:
				obs.GeocodeLookups.WithLabelValues("failed").Inc()
				failures = append(failures, fmt.Errorf("search %q: %w", a, err))
			default:
				obs.GeocodeLookups.WithLabelValues("fetched").Inc()
				fresh[a] = c
			}
			return nil
		})
	}
	eg.Wait()

	if g.cache != nil && len(fresh) > 0 {
		if err := g.cache.PutMany(ctx, fresh); err != nil {
			level.Warn(logger).Log("msg", "geocode cache write failed", "entries", len(fresh), "err", err)
		}
	}

	for a, c := range fresh {
		out[a] = c
	}
	if len(failures) > 0 {
		return out, fmt.Errorf("%d of %d lookups failed: %w", len(failures), len(misses), errors.Join(failures...))
	}
	return out, nil
}

func (g *ORSGeocoder) lookup(ctx context.Context, address string) (domain.Coordinates, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("rate limit wait: %w", err)
	}
	return g.search(ctx, address)
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// search resolves one normalized address.
func (g *ORSGeocoder) search(ctx context.Context, address string) (domain.Coordinates, error) {
	resp, err := g.fetch(ctx, address)
	if err != nil {
		return domain.Coordinates{}, err
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, ports.ErrNoGeocodeResult
	}

	// GeoJSON order is [lon, lat].
	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	c := domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("coordinates out of range for %q: %v", address, c)
	}
	return c, nil
}
