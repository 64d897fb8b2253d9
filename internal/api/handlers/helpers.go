package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"venue-finder-service/internal/api/dto"
	"venue-finder-service/internal/domain"
)

const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeText(w http.ResponseWriter, r *http.Request, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, s); err != nil {
		slog.ErrorContext(r.Context(), "write failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// decodeEnvelope reads a single {"data": ...} object and unmarshals its
// payload into v. It writes a 400 response and returns false on failure.
func decodeEnvelope(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	var env dto.Envelope
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	if err := env.DecodeData(v); err != nil {
		if errors.Is(err, dto.ErrMissingData) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid data payload")
		return false
	}
	return true
}

// writeDomainError maps pipeline and share errors to a status and a
// client-safe message. Server-side failures are logged with the full chain.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrShareLinkNotFound):
		status, msg = http.StatusNotFound, "share link not found"
	case errors.Is(err, domain.ErrGeocodingFailure):
		status, msg = http.StatusUnprocessableEntity, "one of the locations could not be found"
	case errors.Is(err, domain.ErrSearchFailure):
		status, msg = http.StatusBadGateway, "place search failed"
	case errors.Is(err, domain.ErrDetailFetchFailure):
		status, msg = http.StatusBadGateway, "place details lookup failed"
	case errors.Is(err, domain.ErrDirectionsFailure):
		status, msg = http.StatusBadGateway, "directions lookup failed"
	}

	if status >= http.StatusInternalServerError || status == http.StatusUnprocessableEntity {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", status, "err", err)
	}
	writeError(w, r, status, msg)
}
