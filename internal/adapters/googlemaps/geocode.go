package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/obs"
)

// ErrNoResults is returned when the geocoder finds no match for an address.
var ErrNoResults = errors.New("no results")

type geocodeResponse struct {
	apiStatus
	Results []struct {
		Geometry struct {
			Location latLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves address to the provider's first match (/maps/api/geocode/json).
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "maps.Geocode")(&err)

	norm := c.normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	params := url.Values{}
	params.Set("address", norm)

	var decoded geocodeResponse
	if err := c.getJSON(ctx, "geocode", "/maps/api/geocode/json", params, &decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, ErrNoResults)
	}

	loc := decoded.Results[0].Geometry.Location
	return domain.Coordinates{Lon: loc.Lng, Lat: loc.Lat}, nil
}
