package domain

import "errors"

// Error kinds surfaced by the find-places pipeline and the share store.
// Callers test for them with errors.Is; the provider cause stays wrapped.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrGeocodingFailure   = errors.New("geocoding failure")
	ErrSearchFailure      = errors.New("place search failure")
	ErrDetailFetchFailure = errors.New("place detail fetch failure")
	ErrDirectionsFailure  = errors.New("directions failure")
	ErrShareLinkNotFound  = errors.New("share link not found")
)
