package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/obs"
)

// detailFields is the set of optional fields requested for every venue.
const detailFields = "opening_hours,website,url,formatted_phone_number,photo,price_level,rating"

type textSearchResponse struct {
	apiStatus
	Results []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
		Geometry         struct {
			Location latLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type detailsResponse struct {
	apiStatus
	Result struct {
		FormattedPhoneNumber *string `json:"formatted_phone_number"`
		OpeningHours         *struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
		URL    *string `json:"url"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
		PriceLevel *int     `json:"price_level"`
		Rating     *float64 `json:"rating"`
	} `json:"result"`
}

// SearchPlaces runs a text search biased to location (/maps/api/place/textsearch/json).
// Results keep the provider's relevance order; zero results is an empty slice.
func (c *Client) SearchPlaces(
	ctx context.Context,
	query string,
	location domain.Coordinates,
	radiusMeters int,
) (_ []domain.VenueCandidate, err error) {
	defer obs.Time(ctx, "maps.SearchPlaces")(&err)

	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search places: query must be non-empty")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("location", location.Query())
	params.Set("radius", strconv.Itoa(radiusMeters))

	var decoded textSearchResponse
	if err := c.getJSON(ctx, "textsearch", "/maps/api/place/textsearch/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("search places %q: %w", query, err)
	}

	out := make([]domain.VenueCandidate, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		out = append(out, domain.VenueCandidate{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: r.FormattedAddress,
			Location: domain.Coordinates{
				Lon: r.Geometry.Location.Lng,
				Lat: r.Geometry.Location.Lat,
			},
		})
	}

	return out, nil
}

// PlaceDetails fetches the optional detail fields for one venue
// (/maps/api/place/details/json). Absent fields stay nil.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (_ domain.PlaceDetails, err error) {
	defer obs.Time(ctx, "maps.PlaceDetails")(&err)

	if strings.TrimSpace(placeID) == "" {
		return domain.PlaceDetails{}, errors.New("place details: place id must be non-empty")
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)

	var decoded detailsResponse
	if err := c.getJSON(ctx, "details", "/maps/api/place/details/json", params, &decoded); err != nil {
		return domain.PlaceDetails{}, fmt.Errorf("place details %q: %w", placeID, err)
	}

	r := decoded.Result
	out := domain.PlaceDetails{
		PhoneNumber: r.FormattedPhoneNumber,
		MapsURL:     r.URL,
		PriceLevel:  r.PriceLevel,
		Rating:      r.Rating,
	}
	if r.OpeningHours != nil {
		out.OpeningHours = &domain.ProviderHours{WeekdayText: r.OpeningHours.WeekdayText}
	}
	for _, p := range r.Photos {
		out.PhotoReferences = append(out.PhotoReferences, p.PhotoReference)
	}

	return out, nil
}
