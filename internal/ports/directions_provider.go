package ports

import (
	"context"
	"venue-finder-service/internal/domain"
)

// Contract for retrieving travel directions between an origin and a destination.
type DirectionsProvider interface {
	// origin is free text; destination is a "lat, lng" string.
	Directions(ctx context.Context, origin string, destination string) ([]domain.DirectionsRoute, error)
}
