package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"venue-finder-service/internal/api/dto"
	"venue-finder-service/internal/domain"
)

type ShareLinks interface {
	Create(ctx context.Context, places json.RawMessage) (string, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
}

type ShareHandler struct {
	Links ShareLinks
}

// Create stores the submitted result list and responds with its id as plain text.
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.CreateShareRequest
	if !decodeEnvelope(w, r, &req) {
		return
	}

	id, err := h.Links.Create(r.Context(), req.NearestPlaces)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeText(w, r, http.StatusOK, id)
}

func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.GetShareRequest
	if !decodeEnvelope(w, r, &req) {
		return
	}

	places, err := h.Links.Get(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if len(places) == 0 {
		places = domain.EmptyPlaceList
	}

	writeJSON(w, r, http.StatusOK, dto.GetShareResponse{NearestPlaces: places})
}
