package dto

import "time"

type CreateSaleRequest struct {
	OwnerID string `json:"owner_id"`
	City    string `json:"city"`
	Type    string `json:"type"`
	Host    string `json:"host"`
	Address string `json:"address"`
}

type SaleResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	City      string    `json:"city"`
	Type      string    `json:"type"`
	Host      string    `json:"host"`
	Address   string    `json:"address"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Geocoded  bool      `json:"geocoded"`
	CreatedAt time.Time `json:"created_at"`
}

type ListSalesResponse struct {
	Sales []SaleResponse `json:"sales"`
}

type DeleteSalesResponse struct {
	Deleted int `json:"deleted"`
}

type BoxResponse struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Bounds is null when no sale has a position and no origin was given.
type BoundsResponse struct {
	Bounds *BoxResponse `json:"bounds"`
}
