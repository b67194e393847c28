package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sale-route-service/internal/domain"
	"strings"
)

type SaleSeed struct {
	ID      string   `json:"id"`
	OwnerID string   `json:"owner_id"`
	City    string   `json:"city"`
	Type    string   `json:"type"`
	Host    string   `json:"host"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// LoadSeeds reads demo sales from a JSON file.
// Seeds without lat/lon are returned at (0,0) and are expected to be geocoded on import.
func LoadSeeds(jsonPath string) ([]domain.Sale, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seeds: read %q: %w", jsonPath, err)
	}

	var data []SaleSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seeds: parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(data))
	sales := make([]domain.Sale, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("load seeds: item at index %d: id cannot be empty", i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("load seeds: item at index %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}

		address := strings.TrimSpace(item.Address)
		if address == "" {
			return nil, fmt.Errorf("load seeds: item %q: address cannot be empty", id)
		}

		if (item.Lat == nil) != (item.Lon == nil) {
			return nil, fmt.Errorf("load seeds: item %q: lat and lon must be set together", id)
		}

		sale := domain.Sale{
			ID:      id,
			OwnerID: strings.TrimSpace(item.OwnerID),
			City:    strings.TrimSpace(item.City),
			Type:    strings.TrimSpace(item.Type),
			Host:    strings.TrimSpace(item.Host),
			Address: address,
		}
		if item.Lat != nil {
			sale.Coordinates = domain.Coordinates{Lat: *item.Lat, Lon: *item.Lon}
			if !sale.Coordinates.Valid() {
				return nil, fmt.Errorf("load seeds: item %q: invalid coordinates %v", id, sale.Coordinates)
			}
		}

		sales = append(sales, sale)
	}

	return sales, nil
}
