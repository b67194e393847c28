package services

import (
	"context"
	"errors"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"sale-route-service/internal/ports"
)

type PlanRequest struct {
	// Selected sale ids in selection order.
	SaleIDs []string
	// Optional start anchor, usually the device position.
	Origin *domain.Coordinates
}

// PlanSelection resolves a selection against the catalog and plans a route over it.
//
// Ids are resolved in selection order. Ids that no longer match a sale (e.g.
// the listing was deleted after it was selected) are dropped and reported in
// RoutePlan.Dropped rather than failing the plan. When nothing resolves the
// call fails with ErrEmptySelection, so callers never optimize an empty tour.
func PlanSelection(
	ctx context.Context,
	req PlanRequest,
	repo ports.SaleRepository,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "services.PlanSelection")(&err)

	if repo == nil {
		return nil, errors.New("plan selection: repository must be non-nil")
	}

	if req.Origin != nil && !req.Origin.Valid() {
		return nil, fmt.Errorf("plan selection: %w: %v", ErrInvalidOrigin, *req.Origin)
	}

	ids := uniqueIDs(req.SaleIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("plan selection: %w", ErrEmptySelection)
	}

	sales, err := repo.GetSales(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("plan selection: resolve %d sale ids: %w", len(ids), err)
	}

	byID := make(map[string]domain.Sale, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
	}

	resolved := make([]domain.Sale, 0, len(ids))
	dropped := []string{}
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			dropped = append(dropped, id)
			continue
		}
		resolved = append(resolved, s)
	}

	if len(resolved) == 0 {
		return nil, fmt.Errorf("plan selection: none of %d selected ids resolved: %w", len(ids), ErrEmptySelection)
	}

	plan := PlanRoute(resolved, req.Origin)
	plan.Dropped = dropped

	obs.RoutesPlanned.Inc()
	obs.RouteStops.Observe(float64(len(plan.Stops)))

	return plan, nil
}

// PlanRoute orders already resolved stops and builds the navigation link.
func PlanRoute(stops []domain.Sale, origin *domain.Coordinates) *domain.RoutePlan {
	ordered := OptimizeRoute(stops, origin)

	var anchor *domain.Coordinates
	if origin != nil {
		o := *origin
		anchor = &o
	}

	return &domain.RoutePlan{
		Origin:          anchor,
		Stops:           ordered,
		Dropped:         []string{},
		TotalDistanceKm: RouteDistance(ordered, anchor),
		DirectionsURL:   BuildDirectionsURL(ordered, anchor),
	}
}

// uniqueIDs keeps the first occurrence of every id.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
