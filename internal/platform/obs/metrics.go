package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	opDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "operation_duration_seconds",
			Help:    "Duration of timed internal operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	RoutesPlanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "routes_planned_total",
			Help: "Total number of route plans computed",
		},
	)

	RouteStops = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "route_stops",
			Help:    "Number of stops per planned route",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	// outcome: cache_hit, fetched, not_found, failed
	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Geocode lookups by outcome",
		},
		[]string{"outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "selection_sessions_active",
			Help: "Number of live selection sessions",
		},
	)
)
