package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/ports"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeORS serves /geocode/search from a table and counts requests per address.
type fakeORS struct {
	mu       sync.Mutex
	table    map[string][2]float64 // address -> [lon, lat]
	requests map[string]int
	failures atomic.Int32 // leading 503 responses to return
}

func newFakeORS(table map[string][2]float64) *fakeORS {
	return &fakeORS{table: table, requests: map[string]int{}}
}

func (f *fakeORS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/geocode/search" || r.Header.Get("Authorization") != "test-key" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if f.failures.Load() > 0 {
		f.failures.Add(-1)
		http.Error(w, "try later", http.StatusServiceUnavailable)
		return
	}

	text := r.URL.Query().Get("text")
	f.mu.Lock()
	f.requests[text]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	c, ok := f.table[text]
	if !ok {
		fmt.Fprint(w, `{"type":"FeatureCollection","features":[]}`)
		return
	}
	fmt.Fprintf(w, `{"type":"FeatureCollection","features":[{"geometry":{"type":"Point","coordinates":[%v,%v]}}]}`, c[0], c[1])
}

func (f *fakeORS) count(address string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[address]
}

type mapCache struct {
	mu sync.Mutex
	m  map[string]domain.Coordinates
}

func (c *mapCache) GetMany(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]domain.Coordinates{}
	for _, a := range addresses {
		if v, ok := c.m[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

func (c *mapCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for a, v := range results {
		c.m[a] = v
	}
	return nil
}

func newTestGeocoder(t *testing.T, srv *httptest.Server, opts ...Option) *ORSGeocoder {
	t.Helper()
	opts = append([]Option{WithBaseURL(srv.URL), WithRate(0), WithHTTPClient(srv.Client())}, opts...)
	g, err := NewORSGeocoder("test-key", opts...)
	require.NoError(t, err)
	return g
}

var _ ports.BatchGeocoder = (*ORSGeocoder)(nil)
var _ ports.BatchGeocoder = (*StaticGeocoder)(nil)

func TestORSGeocoderGeocode(t *testing.T) {
	fake := newFakeORS(map[string][2]float64{"123 Oak St, Verona": {-89.5332, 42.9908}})
	srv := httptest.NewServer(fake)
	defer srv.Close()

	g := newTestGeocoder(t, srv)

	c, err := g.Geocode(context.Background(), "  123 Oak St,   Verona ")
	require.NoError(t, err)
	require.Equal(t, domain.Coordinates{Lat: 42.9908, Lon: -89.5332}, c)

	_, err = g.Geocode(context.Background(), "nowhere")
	require.ErrorIs(t, err, ports.ErrNoGeocodeResult)

	_, err = g.Geocode(context.Background(), "   ")
	require.Error(t, err)
}

func TestORSGeocoderGeocodeManyUsesCache(t *testing.T) {
	fake := newFakeORS(map[string][2]float64{
		"123 Oak St, Verona":  {-89.5332, 42.9908},
		"44 Lake Ave, Monona": {-89.334, 43.0622},
	})
	srv := httptest.NewServer(fake)
	defer srv.Close()

	cache := &mapCache{m: map[string]domain.Coordinates{
		"9 Grove Ct, Shorewood Hills": {Lat: 43.0775, Lon: -89.4457},
	}}
	g := newTestGeocoder(t, srv, WithCache(cache))

	addrs := []string{"123 Oak St, Verona", "44 Lake Ave, Monona", "123 Oak St,  Verona", "9 Grove Ct, Shorewood Hills", "unknown"}
	got, err := g.GeocodeMany(context.Background(), addrs)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, domain.Coordinates{Lat: 43.0622, Lon: -89.334}, got["44 Lake Ave, Monona"])
	require.Equal(t, 1, fake.count("123 Oak St, Verona"))
	require.Zero(t, fake.count("9 Grove Ct, Shorewood Hills"))

	// Fetched results were written back; a second call is served from cache.
	_, err = g.GeocodeMany(context.Background(), addrs)
	require.NoError(t, err)
	require.Equal(t, 1, fake.count("123 Oak St, Verona"))
	require.Equal(t, 2, fake.count("unknown"))
}

func TestORSGeocoderRetriesTransientFailures(t *testing.T) {
	fake := newFakeORS(map[string][2]float64{"1 Main St": {-89.4, 43.07}})
	fake.failures.Store(2)
	srv := httptest.NewServer(fake)
	defer srv.Close()

	g := newTestGeocoder(t, srv)
	c, err := g.Geocode(context.Background(), "1 Main St")
	require.NoError(t, err)
	require.Equal(t, 43.07, c.Lat)
}

func TestORSGeocoderDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	g := newTestGeocoder(t, srv)
	_, err := g.GeocodeMany(context.Background(), []string{"1 Main St"})
	require.Error(t, err)
	require.EqualValues(t, 1, hits.Load())
}

func TestORSGeocoderGeocodeManyKeepsPartialResults(t *testing.T) {
	fake := newFakeORS(map[string][2]float64{"1 Main St": {-89.4, 43.07}})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("text") == "2 Broken Rd" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		fake.ServeHTTP(w, r)
	}))
	defer srv.Close()

	cache := &mapCache{m: map[string]domain.Coordinates{}}
	g := newTestGeocoder(t, srv, WithCache(cache))

	got, err := g.GeocodeMany(context.Background(), []string{"1 Main St", "2 Broken Rd", "nowhere"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 Broken Rd")
	require.Equal(t, map[string]domain.Coordinates{"1 Main St": {Lat: 43.07, Lon: -89.4}}, got)
	require.Contains(t, cache.m, "1 Main St")
	require.Equal(t, 1, fake.count("nowhere"))
}

func TestORSGeocoderHonorsRetryAfter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[-89.4,43.07]}}]}`)
	}))
	defer srv.Close()

	g := newTestGeocoder(t, srv)
	start := time.Now()
	c, err := g.Geocode(context.Background(), "1 Main St")
	require.NoError(t, err)
	require.Equal(t, 43.07, c.Lat)
	require.EqualValues(t, 2, hits.Load())
	require.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestRetryAfter(t *testing.T) {
	require.Equal(t, 2*time.Second, retryAfter("2"))
	require.Equal(t, maxRetryAfter, retryAfter("3600"))
	require.Zero(t, retryAfter(""))
	require.Zero(t, retryAfter("-1"))
	require.Zero(t, retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestNewORSGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSGeocoder("")
	require.Error(t, err)
}

func TestStaticGeocoder(t *testing.T) {
	g := NewStaticGeocoder(map[string]domain.Coordinates{"1 Main St, Madison": {Lat: 43.07, Lon: -89.4}})

	c, err := g.Geocode(context.Background(), "1 Main St,  Madison")
	require.NoError(t, err)
	require.Equal(t, 43.07, c.Lat)

	_, err = g.Geocode(context.Background(), "2 Main St")
	require.ErrorIs(t, err, ports.ErrNoGeocodeResult)

	many, err := g.GeocodeMany(context.Background(), []string{"1 Main St, Madison", "2 Main St"})
	require.NoError(t, err)
	require.Len(t, many, 1)
	require.Equal(t, 3, g.Calls())
}
