package domain

// Represents a planned visiting order over a selection of sales.
// A RoutePlan is the output of the route optimizer: Stops is a permutation
// of the resolved selection, Origin the optional start anchor (usually the
// device position). Selected ids that did not resolve to a known sale are
// listed in Dropped and never appear as stops.
// It is immutable planning data and is not persisted.
type RoutePlan struct {
	Origin          *Coordinates
	Stops           []Sale
	Dropped         []string
	TotalDistanceKm float64
	DirectionsURL   string
}
