package services

import (
	"sale-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteFeatureCollection renders a plan as GeoJSON: a LineString following
// the visiting order (from the origin when present), the origin point, and
// one Point per stop numbered from 1.
func RouteFeatureCollection(plan *domain.RoutePlan) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if plan == nil {
		return fc
	}

	line := make(orb.LineString, 0, len(plan.Stops)+1)
	points := make([]*geojson.Feature, 0, len(plan.Stops)+1)

	if plan.Origin != nil {
		pt := toPoint(*plan.Origin)
		line = append(line, pt)

		f := geojson.NewFeature(pt)
		f.Properties["kind"] = "origin"
		points = append(points, f)
	}

	for i, s := range plan.Stops {
		pt := toPoint(s.Coordinates)
		line = append(line, pt)

		f := geojson.NewFeature(pt)
		f.Properties["kind"] = "stop"
		f.Properties["order"] = i + 1
		f.Properties["sale_id"] = s.ID
		f.Properties["address"] = s.Address
		points = append(points, f)
	}

	if len(line) >= 2 {
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "route"
		f.Properties["distance_km"] = plan.TotalDistanceKm
		fc.Append(f)
	}
	for _, f := range points {
		fc.Append(f)
	}

	return fc
}

// GeoJSON positions are [lon, lat].
func toPoint(c domain.Coordinates) orb.Point { return orb.Point{c.Lon, c.Lat} }
