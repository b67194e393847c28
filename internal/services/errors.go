package services

import "errors"

var (
	// ErrEmptySelection means no selected id resolved to a known sale.
	ErrEmptySelection = errors.New("no sales selected")
	ErrInvalidOrigin  = errors.New("origin is not a valid WGS-84 position")
	ErrInvalidListing = errors.New("invalid listing")
)
