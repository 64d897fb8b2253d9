package googlemaps

import (
	"context"
	"fmt"
	"sync"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/ports"
)

// MockProvider is an in-memory maps provider for tests.
// Unknown locations, place ids and origin/destination pairs are errors,
// matching how the real provider fails.
type MockProvider struct {
	mu sync.Mutex

	locations  map[string]domain.Coordinates
	candidates []domain.VenueCandidate
	details    map[string]domain.PlaceDetails
	photos     map[string]string
	routes     map[string][]domain.DirectionsRoute

	// Err* force the matching call to fail.
	ErrSearch     error
	ErrDetails    error
	ErrPhoto      error
	ErrDirections error

	searchCalls     int
	detailCalls     []string
	directionsCalls []string
	lastRadius      int
	lastCenter      domain.Coordinates
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		locations: map[string]domain.Coordinates{},
		details:   map[string]domain.PlaceDetails{},
		photos:    map[string]string{},
		routes:    map[string][]domain.DirectionsRoute{},
	}
}

func (p *MockProvider) AddLocation(address string, c domain.Coordinates) *MockProvider {
	p.locations[address] = c
	return p
}

// AddVenue appends a search candidate, its details and an optional photo URL
// for every photo reference it carries.
func (p *MockProvider) AddVenue(c domain.VenueCandidate, d domain.PlaceDetails, photoURL string) *MockProvider {
	p.candidates = append(p.candidates, c)
	p.details[c.PlaceID] = d
	for _, ref := range d.PhotoReferences {
		p.photos[ref] = photoURL
	}
	return p
}

func (p *MockProvider) AddRoute(origin, destination string, routes []domain.DirectionsRoute) *MockProvider {
	p.routes[origin+"|"+destination] = routes
	return p
}

func (p *MockProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := p.locations[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ErrNoResults)
	}
	return c, nil
}

func (p *MockProvider) SearchPlaces(ctx context.Context, query string, location domain.Coordinates, radiusMeters int) ([]domain.VenueCandidate, error) {
	p.mu.Lock()
	p.searchCalls++
	p.lastRadius = radiusMeters
	p.lastCenter = location
	p.mu.Unlock()

	if p.ErrSearch != nil {
		return nil, p.ErrSearch
	}
	out := make([]domain.VenueCandidate, len(p.candidates))
	copy(out, p.candidates)
	return out, nil
}

func (p *MockProvider) PlaceDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	p.mu.Lock()
	p.detailCalls = append(p.detailCalls, placeID)
	p.mu.Unlock()

	if p.ErrDetails != nil {
		return domain.PlaceDetails{}, p.ErrDetails
	}
	d, ok := p.details[placeID]
	if !ok {
		return domain.PlaceDetails{}, fmt.Errorf("missing details for %q", placeID)
	}
	return d, nil
}

func (p *MockProvider) ResolvePhoto(ctx context.Context, reference string) (string, error) {
	if p.ErrPhoto != nil {
		return "", p.ErrPhoto
	}
	return p.photos[reference], nil
}

func (p *MockProvider) Directions(ctx context.Context, origin, destination string) ([]domain.DirectionsRoute, error) {
	p.mu.Lock()
	p.directionsCalls = append(p.directionsCalls, origin+"|"+destination)
	p.mu.Unlock()

	if p.ErrDirections != nil {
		return nil, p.ErrDirections
	}
	r, ok := p.routes[origin+"|"+destination]
	if !ok {
		return nil, fmt.Errorf("missing route %q -> %q", origin, destination)
	}
	return r, nil
}

// SearchCalls reports how many searches ran and the last center and radius used.
func (p *MockProvider) SearchCalls() (int, domain.Coordinates, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchCalls, p.lastCenter, p.lastRadius
}

func (p *MockProvider) DetailCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.detailCalls...)
}

func (p *MockProvider) DirectionsCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.directionsCalls...)
}

var _ ports.MapsProvider = (*MockProvider)(nil)
