package dto

import "encoding/json"

type FindPlacesRequest struct {
	Locations []string `json:"locations"`
	Category  string   `json:"category"`
}

// CreateShareRequest keeps nearest_places undecoded so the list is stored
// exactly as the client sent it.
type CreateShareRequest struct {
	NearestPlaces json.RawMessage `json:"nearest_places"`
}

type GetShareRequest struct {
	ID string `json:"id"`
}

type GetShareResponse struct {
	NearestPlaces json.RawMessage `json:"nearest_places"`
}
