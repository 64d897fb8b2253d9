package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/obs"
)

type directionsResponse struct {
	apiStatus
	Routes []struct {
		Legs []struct {
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			Steps []struct {
				HTMLInstructions string `json:"html_instructions"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions retrieves routes from origin to destination (/maps/api/directions/json).
// ZERO_RESULTS yields an empty slice.
func (c *Client) Directions(
	ctx context.Context,
	origin string,
	destination string,
) (_ []domain.DirectionsRoute, err error) {
	defer obs.Time(ctx, "maps.Directions")(&err)

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, errors.New("directions: origin and destination must be non-empty")
	}

	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)

	var decoded directionsResponse
	if err := c.getJSON(ctx, "directions", "/maps/api/directions/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("directions %q -> %q: %w", origin, destination, err)
	}

	routes := make([]domain.DirectionsRoute, 0, len(decoded.Routes))
	for _, r := range decoded.Routes {
		legs := make([]domain.DirectionsLeg, 0, len(r.Legs))
		for _, l := range r.Legs {
			steps := make([]string, 0, len(l.Steps))
			for _, s := range l.Steps {
				steps = append(steps, s.HTMLInstructions)
			}
			legs = append(legs, domain.DirectionsLeg{
				DurationText: l.Duration.Text,
				Steps:        steps,
			})
		}
		routes = append(routes, domain.DirectionsRoute{Legs: legs})
	}

	return routes, nil
}
