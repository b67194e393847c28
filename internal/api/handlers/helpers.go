package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sale-route-service/internal/api/dto"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/ports"
	"sale-route-service/internal/services"
	"sale-route-service/internal/session"

	"github.com/go-kit/log/level"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	writeBody(w, r, "application/json", status, v)
}

func writeBody(w http.ResponseWriter, r *http.Request, contentType string, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		level.Error(obs.LoggerFrom(r.Context())).Log(
			"msg", "encode failed", "method", r.Method, "path", r.URL.Path, "err", err,
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"internal server error"}`+"\n")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(append(b, '\n'))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Sentinel errors that are safe to show to clients, with their status.
var clientErrors = []struct {
	target error
	status int
}{
	{services.ErrEmptySelection, http.StatusBadRequest},
	{services.ErrInvalidOrigin, http.StatusBadRequest},
	{services.ErrInvalidListing, http.StatusBadRequest},
	{ports.ErrSaleNotFound, http.StatusNotFound},
	{session.ErrSessionNotFound, http.StatusNotFound},
}

// writeServiceError maps known sentinels to 4xx and logs everything else as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.target) {
			writeError(w, r, ce.status, ce.target.Error())
			return
		}
	}

	level.Error(obs.LoggerFrom(r.Context())).Log("msg", op+" failed", "err", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads exactly one JSON object with no unknown fields.
// An empty body is accepted when optional is set and leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// parseOrigin turns an optional request origin into coordinates.
func parseOrigin(o *dto.LatLng) (*domain.Coordinates, error) {
	if o == nil {
		return nil, nil
	}
	if o.Lat == nil || o.Lng == nil {
		return nil, fmt.Errorf("%w: origin needs both lat and lng", services.ErrInvalidOrigin)
	}
	c := domain.Coordinates{Lat: *o.Lat, Lon: *o.Lng}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidOrigin, c)
	}
	return &c, nil
}

func toSaleResponse(s domain.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		City:      s.City,
		Type:      s.Type,
		Host:      s.Host,
		Address:   s.Address,
		Lat:       s.Coordinates.Lat,
		Lng:       s.Coordinates.Lon,
		Geocoded:  s.Geocoded(),
		CreatedAt: s.CreatedAt,
	}
}
