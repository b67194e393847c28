package handlers

import (
	"net/http"
	"sale-route-service/internal/api/dto"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/ports"
	"sale-route-service/internal/services"
	"strconv"
	"strings"
)

// SaleHandler exposes the sale catalog.
type SaleHandler struct {
	Repo     ports.SaleRepository
	Geocoder ports.Geocoder
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		sales []domain.Sale
		err   error
	)
	if owner := strings.TrimSpace(r.URL.Query().Get("owner")); owner != "" {
		sales, err = h.Repo.ListSalesByOwner(r.Context(), owner)
	} else {
		sales, err = h.Repo.ListSales(r.Context())
	}
	if err != nil {
		writeServiceError(w, r, "list sales", err)
		return
	}

	res := dto.ListSalesResponse{Sales: make([]dto.SaleResponse, 0, len(sales))}
	for _, s := range sales {
		res.Sales = append(res.Sales, toSaleResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSaleRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := services.CreateListing(r.Context(), services.ListingRequest{
		OwnerID: req.OwnerID,
		City:    req.City,
		Type:    req.Type,
		Host:    req.Host,
		Address: req.Address,
	}, h.Repo, h.Geocoder)
	if err != nil {
		writeServiceError(w, r, "create listing", err)
		return
	}

	w.Header().Set("Location", "/sales/"+sale.ID)
	writeJSON(w, r, http.StatusCreated, toSaleResponse(*sale))
}

func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteSale(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete sale", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteByOwner removes all sales of ?owner=. The filter is mandatory.
func (h *SaleHandler) DeleteByOwner(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "owner query parameter is required")
		return
	}

	n, err := h.Repo.DeleteSalesByOwner(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, "delete owner sales", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DeleteSalesResponse{Deleted: n})
}

// Bounds frames every positioned sale, plus ?lat=&lng= when given.
func (h *SaleHandler) Bounds(w http.ResponseWriter, r *http.Request) {
	origin, err := queryOrigin(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sales, err := h.Repo.ListSales(r.Context())
	if err != nil {
		writeServiceError(w, r, "list sales", err)
		return
	}

	var res dto.BoundsResponse
	if b, ok := services.MapBounds(sales, origin); ok {
		res.Bounds = &dto.BoxResponse{South: b.South, West: b.West, North: b.North, East: b.East}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func queryOrigin(r *http.Request) (*domain.Coordinates, error) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" && lngStr == "" {
		return nil, nil
	}

	var o dto.LatLng
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, services.ErrInvalidOrigin
		}
		o.Lat = &lat
	}
	if lngStr != "" {
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return nil, services.ErrInvalidOrigin
		}
		o.Lng = &lng
	}

	return parseOrigin(&o)
}
