package handlers

import (
	"net/http"
	"sale-route-service/internal/api/dto"
	"sale-route-service/internal/ports"
	"sale-route-service/internal/services"
	"sale-route-service/internal/session"
	"strings"
)

// SessionHandler exposes per-client selections and plans routes from them.
type SessionHandler struct {
	Sessions *session.Store
	Repo     ports.SaleRepository
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.Sessions.Create()
	w.Header().Set("Location", "/sessions/"+id)
	writeJSON(w, r, http.StatusCreated, dto.SessionResponse{SessionID: id, SaleIDs: []string{}})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ids, err := h.Sessions.Selected(id)
	if err != nil {
		writeServiceError(w, r, "get session", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.SessionResponse{SessionID: id, SaleIDs: ids, Count: len(ids)})
}

// Toggle flips one sale in the selection. Ids are not checked against the
// catalog here; ids that do not resolve are reported when a route is planned.
func (h *SessionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	saleID := strings.TrimSpace(req.SaleID)
	if saleID == "" {
		writeError(w, r, http.StatusBadRequest, "sale_id is required")
		return
	}

	id := r.PathValue("id")
	selected, n, err := h.Sessions.Toggle(id, saleID)
	if err != nil {
		writeServiceError(w, r, "toggle selection", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToggleResponse{SessionID: id, SaleID: saleID, Selected: selected, Count: n})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Delete(r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Route plans over a snapshot of the session selection; the body is optional.
func (h *SessionHandler) Route(w http.ResponseWriter, r *http.Request) {
	var req dto.SessionRouteRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	origin, err := parseOrigin(req.Origin)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := h.Sessions.Selected(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get session", err)
		return
	}

	plan, err := services.PlanSelection(r.Context(), services.PlanRequest{SaleIDs: ids, Origin: origin}, h.Repo)
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	writeRoute(w, r, plan)
}
