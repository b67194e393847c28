package services

import (
	"sale-route-service/internal/domain"
	"strings"
)

const directionsBaseURL = "https://www.google.com/maps/dir/?api=1"

// waypointSeparator is an URL-encoded pipe; the maps app matches it literally.
const waypointSeparator = "%7C"

// BuildDirectionsURL encodes an ordered route as a Google Maps directions link.
//
// With an origin every stop but the last becomes a waypoint. Without one the
// first stop is used as origin and only the stops strictly between first and
// last are waypoints. The waypoints parameter is omitted when empty.
// The output is consumed by an external app and must stay byte-stable.
func BuildDirectionsURL(stops []domain.Sale, origin *domain.Coordinates) string {
	if len(stops) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(directionsBaseURL)

	last := stops[len(stops)-1]

	if len(stops) == 1 {
		if origin != nil {
			b.WriteString("&origin=")
			b.WriteString(origin.String())
		}
		b.WriteString("&destination=")
		b.WriteString(last.Coordinates.String())
		b.WriteString("&travelmode=driving")
		return b.String()
	}

	var waypoints []domain.Sale
	b.WriteString("&origin=")
	if origin != nil {
		b.WriteString(origin.String())
		waypoints = stops[:len(stops)-1]
	} else {
		b.WriteString(stops[0].Coordinates.String())
		waypoints = stops[1 : len(stops)-1]
	}

	b.WriteString("&destination=")
	b.WriteString(last.Coordinates.String())

	if len(waypoints) > 0 {
		parts := make([]string, 0, len(waypoints))
		for _, w := range waypoints {
			parts = append(parts, w.Coordinates.String())
		}
		b.WriteString("&waypoints=")
		b.WriteString(strings.Join(parts, waypointSeparator))
	}

	b.WriteString("&travelmode=driving")
	return b.String()
}
