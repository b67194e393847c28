package dto

// LatLng uses pointers so a missing field is distinguishable from 0.
type LatLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type PlanRouteRequest struct {
	SaleIDs []string `json:"sale_ids"`
	Origin  *LatLng  `json:"origin"`
}

type SessionRouteRequest struct {
	Origin *LatLng `json:"origin"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RouteStopResponse struct {
	Order int          `json:"order"`
	Sale  SaleResponse `json:"sale"`
}

type RouteResponse struct {
	Origin          *PointResponse      `json:"origin"`
	Stops           []RouteStopResponse `json:"stops"`
	Dropped         []string            `json:"dropped"`
	TotalDistanceKm float64             `json:"total_distance_km"`
	DirectionsURL   string              `json:"directions_url"`
}
