package handlers

import (
	"context"
	"net/http"
	"strings"
	"venue-finder-service/internal/api/dto"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/services"
)

type PlaceFinder interface {
	FindPlaces(ctx context.Context, req services.FindPlacesRequest) ([]domain.PlaceResult, error)
}

type PlacesHandler struct {
	Finder PlaceFinder
}

// Find geocodes the submitted locations and returns venues near their
// centroid with per-participant directions.
func (h *PlacesHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.FindPlacesRequest
	if !decodeEnvelope(w, r, &req) {
		return
	}

	locations := make([]string, 0, len(req.Locations))
	for _, l := range req.Locations {
		locations = append(locations, strings.TrimSpace(l))
	}

	places, err := h.Finder.FindPlaces(r.Context(), services.FindPlacesRequest{
		Locations: locations,
		Query:     strings.TrimSpace(req.Category),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, places)
}
