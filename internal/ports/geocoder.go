package ports

import (
	"context"
	"venue-finder-service/internal/domain"
)

// Contract for turning a free-text location into coordinates.
type Geocoder interface {
	// Return the provider's best match for address.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Optional extension of Geocoder that resolves many addresses at once,
// typically behind a persistent cache. Keys of the result are the inputs.
type BatchGeocoder interface {
	Geocoder
	GeocodeMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}

// Persistent address -> coordinates cache.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
