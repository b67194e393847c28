package domain

import "time"

// Represents a single garage/yard sale listing.
// A Sale is a candidate stop for a route. Only ID and Coordinates matter to
// route planning; the descriptive fields are carried through untouched.
type Sale struct {
	ID          string
	OwnerID     string
	City        string
	Type        string
	Host        string
	Address     string
	Coordinates Coordinates
	CreatedAt   time.Time
}

// Geocoded reports whether the sale has a real position rather than the (0,0) fallback.
func (s Sale) Geocoded() bool { return !s.Coordinates.IsZero() }

// FullAddress is the geocoding query for the listing ("<address>, <city>").
func (s Sale) FullAddress() string {
	if s.City == "" {
		return s.Address
	}
	return s.Address + ", " + s.City
}
