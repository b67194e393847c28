package handlers

import (
	"net/http"
	"sale-route-service/internal/api/dto"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/ports"
	"sale-route-service/internal/services"
)

// RouteHandler plans routes from an explicit list of sale ids.
// Clients that keep their selection server-side use SessionHandler.Route instead.
type RouteHandler struct {
	Repo ports.SaleRepository
}

func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRouteRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	origin, err := parseOrigin(req.Origin)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := services.PlanSelection(r.Context(), services.PlanRequest{
		SaleIDs: req.SaleIDs,
		Origin:  origin,
	}, h.Repo)
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	writeRoute(w, r, plan)
}

// writeRoute renders a plan as JSON, or as GeoJSON with ?format=geojson.
func writeRoute(w http.ResponseWriter, r *http.Request, plan *domain.RoutePlan) {
	switch r.URL.Query().Get("format") {
	case "", "json":
	case "geojson":
		writeBody(w, r, "application/geo+json", http.StatusOK, services.RouteFeatureCollection(plan))
		return
	default:
		writeError(w, r, http.StatusBadRequest, "format must be json or geojson")
		return
	}

	res := dto.RouteResponse{
		Stops:           make([]dto.RouteStopResponse, 0, len(plan.Stops)),
		Dropped:         plan.Dropped,
		TotalDistanceKm: plan.TotalDistanceKm,
		DirectionsURL:   plan.DirectionsURL,
	}
	if plan.Origin != nil {
		res.Origin = &dto.PointResponse{Lat: plan.Origin.Lat, Lng: plan.Origin.Lon}
	}
	for i, s := range plan.Stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{Order: i + 1, Sale: toSaleResponse(s)})
	}

	writeJSON(w, r, http.StatusOK, res)
}
