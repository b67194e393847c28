package dto

type SessionResponse struct {
	SessionID string   `json:"session_id"`
	SaleIDs   []string `json:"sale_ids"`
	Count     int      `json:"count"`
}

type ToggleRequest struct {
	SaleID string `json:"sale_id"`
}

type ToggleResponse struct {
	SessionID string `json:"session_id"`
	SaleID    string `json:"sale_id"`
	Selected  bool   `json:"selected"`
	Count     int    `json:"count"`
}
