package ports

import (
	"context"
	"venue-finder-service/internal/domain"
)

// Search venues matching query within radiusMeters of location, in provider order.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, location domain.Coordinates, radiusMeters int) ([]domain.VenueCandidate, error)
}

// Fetch the optional detail fields for one venue.
type PlaceDetailer interface {
	PlaceDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error)
}

// Resolve a photo reference to a direct image URL.
// An empty URL with a nil error means the provider offered no usable image.
type PhotoResolver interface {
	ResolvePhoto(ctx context.Context, reference string) (string, error)
}
