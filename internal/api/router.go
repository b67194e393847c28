package api

import (
	"net/http"
	"sale-route-service/internal/api/handlers"
	"sale-route-service/internal/ports"
	"sale-route-service/internal/session"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// geocoder may be nil, in which case new listings are stored without a position.
func NewRouter(
	repo ports.SaleRepository,
	geocoder ports.Geocoder,
	sessions *session.Store,
	logger log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	saleHandler := &handlers.SaleHandler{Repo: repo, Geocoder: geocoder}
	sessionHandler := &handlers.SessionHandler{Sessions: sessions, Repo: repo}
	routeHandler := &handlers.RouteHandler{Repo: repo}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /sales", saleHandler.List)
	mux.HandleFunc("POST /sales", saleHandler.Create)
	mux.HandleFunc("DELETE /sales", saleHandler.DeleteByOwner)
	mux.HandleFunc("GET /sales/bounds", saleHandler.Bounds)
	mux.HandleFunc("DELETE /sales/{id}", saleHandler.Delete)

	mux.HandleFunc("POST /sessions", sessionHandler.Create)
	mux.HandleFunc("GET /sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("DELETE /sessions/{id}", sessionHandler.Delete)
	mux.HandleFunc("POST /sessions/{id}/toggle", sessionHandler.Toggle)
	mux.HandleFunc("POST /sessions/{id}/route", sessionHandler.Route)

	mux.HandleFunc("POST /routes", routeHandler.Plan)

	return requestContext(logger, observe(mux))
}
