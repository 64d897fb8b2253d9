package services

import (
	"context"
	"fmt"
	"strings"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/metrics"
	"venue-finder-service/internal/platform/obs"
	"venue-finder-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// SearchRadiusMeters is the fixed radius around the centroid passed to the
// place search.
const SearchRadiusMeters = 1500

const (
	defaultMaxResults  = 3
	defaultConcurrency = 8
)

type FindPlacesRequest struct {
	Locations []string
	Query     string
}

// PlaceFinder runs the find-places pipeline against a maps provider:
// geocode, centroid, search, then details and directions per venue.
type PlaceFinder struct {
	provider    ports.MapsProvider
	maxResults  int
	concurrency int
}

// NewPlaceFinder returns a finder keeping at most maxResults venues and
// running at most concurrency provider calls at once. Non-positive values
// fall back to 3 and 8.
func NewPlaceFinder(provider ports.MapsProvider, maxResults, concurrency int) *PlaceFinder {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &PlaceFinder{provider: provider, maxResults: maxResults, concurrency: concurrency}
}

// FindPlaces returns up to maxResults venues near the centroid of the
// request's locations, in provider order. Each result carries one route per
// location in input order. Any provider failure aborts the whole call.
func (f *PlaceFinder) FindPlaces(ctx context.Context, req FindPlacesRequest) (_ []domain.PlaceResult, err error) {
	defer obs.Time(ctx, "services.FindPlaces")(&err)
	defer func() { metrics.FindPlacesTotal.WithLabelValues(metrics.Outcome(err)).Inc() }()

	if len(req.Locations) == 0 {
		return nil, fmt.Errorf("find places: %w: at least one location is required", domain.ErrInvalidInput)
	}
	for i, loc := range req.Locations {
		if strings.TrimSpace(loc) == "" {
			return nil, fmt.Errorf("find places: %w: location #%d is empty", domain.ErrInvalidInput, i+1)
		}
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("find places: %w: query is empty", domain.ErrInvalidInput)
	}

	origins, err := f.geocodeAll(ctx, req.Locations)
	if err != nil {
		return nil, err
	}

	coords := make([]domain.Coordinates, len(origins))
	for i, o := range origins {
		coords[i] = o.Coordinates
	}
	center, err := domain.Centroid(coords)
	if err != nil {
		return nil, fmt.Errorf("find places: %w", err)
	}

	candidates, err := f.provider.SearchPlaces(ctx, req.Query, center, SearchRadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("find places: %w: %w", domain.ErrSearchFailure, err)
	}
	if len(candidates) > f.maxResults {
		candidates = candidates[:f.maxResults]
	}
	if len(candidates) == 0 {
		return []domain.PlaceResult{}, nil
	}

	details := make([]domain.VenueDetail, len(candidates))
	routes := make([][]domain.RouteInfo, len(candidates))
	for i := range routes {
		routes[i] = make([]domain.RouteInfo, len(origins))
	}

	// Every detail fetch and every (venue, origin) directions call is an
	// independent task; results land in preallocated slots.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			d, err := f.enrich(gctx, c.PlaceID)
			if err != nil {
				return fmt.Errorf("find places: %w: place %q: %w", domain.ErrDetailFetchFailure, c.PlaceID, err)
			}
			details[i] = d
			return nil
		})

		destination := c.Location.LatLng()
		for j, o := range origins {
			j, o := j, o
			g.Go(func() error {
				r, err := f.provider.Directions(gctx, o.Location, destination)
				if err != nil {
					return fmt.Errorf("find places: %w: %q -> %q: %w", domain.ErrDirectionsFailure, o.Location, destination, err)
				}
				routes[i][j] = domain.NewRouteInfo(o, r)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.PlaceResult, len(candidates))
	for i, c := range candidates {
		out[i] = domain.NewPlaceResult(c, details[i], routes[i])
	}
	return out, nil
}

func (f *PlaceFinder) geocodeAll(ctx context.Context, locations []string) ([]domain.Origin, error) {
	origins := make([]domain.Origin, len(locations))

	// Prefer the batch call when supported so the provider can dedupe and cache.
	if bg, ok := f.provider.(ports.BatchGeocoder); ok {
		found, err := bg.GeocodeMany(ctx, locations)
		if err != nil {
			return nil, fmt.Errorf("find places: %w: %w", domain.ErrGeocodingFailure, err)
		}
		for i, loc := range locations {
			c, ok := found[loc]
			if !ok {
				return nil, fmt.Errorf("find places: %w: no coordinates for %q", domain.ErrGeocodingFailure, loc)
			}
			origins[i] = domain.Origin{Location: loc, Coordinates: c}
		}
		return origins, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			c, err := f.provider.Geocode(gctx, loc)
			if err != nil {
				return fmt.Errorf("find places: %w: %w", domain.ErrGeocodingFailure, err)
			}
			origins[i] = domain.Origin{Location: loc, Coordinates: c}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return origins, nil
}

// enrich fetches details and resolves the first photo. A photo that cannot be
// resolved to a redirect target falls back to the placeholder.
func (f *PlaceFinder) enrich(ctx context.Context, placeID string) (domain.VenueDetail, error) {
	d, err := f.provider.PlaceDetails(ctx, placeID)
	if err != nil {
		return domain.VenueDetail{}, err
	}

	photoURL := ""
	if ref, ok := d.FirstPhotoReference(); ok {
		photoURL, err = f.provider.ResolvePhoto(ctx, ref)
		if err != nil {
			return domain.VenueDetail{}, fmt.Errorf("resolve photo: %w", err)
		}
	}

	return domain.ResolveVenueDetail(d, photoURL), nil
}
