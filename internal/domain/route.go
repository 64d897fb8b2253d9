package domain

// Origin is one participant: the location text they typed and where it geocoded to.
type Origin struct {
	Location    string
	Coordinates Coordinates
}

// Represents one route returned by the directions provider.
type DirectionsRoute struct {
	Legs []DirectionsLeg
}

// A single leg with its human-readable duration and step instructions in travel order.
type DirectionsLeg struct {
	DurationText string
	Steps        []string
}

// RouteInfo describes how one participant reaches one venue.
type RouteInfo struct {
	Origin           string   `json:"origin"`
	OriginLat        float64  `json:"origin_lat,string"`
	OriginLng        float64  `json:"origin_lng,string"`
	JourneyLength    string   `json:"journey_length"`
	HTMLInstructions []string `json:"html_instructions"`
}

// FlattenRoutes reduces provider routes to the journey duration of the first
// leg and every step instruction across all legs of all routes, in provider
// order. No legs yields an empty duration and an empty (non-nil) list.
func FlattenRoutes(routes []DirectionsRoute) (string, []string) {
	journeyLength := ""
	seenLeg := false
	instructions := []string{}

	for _, r := range routes {
		for _, leg := range r.Legs {
			if !seenLeg {
				journeyLength = leg.DurationText
				seenLeg = true
			}
			instructions = append(instructions, leg.Steps...)
		}
	}

	return journeyLength, instructions
}

func NewRouteInfo(o Origin, routes []DirectionsRoute) RouteInfo {
	journeyLength, instructions := FlattenRoutes(routes)
	return RouteInfo{
		Origin:           o.Location,
		OriginLat:        o.Coordinates.Lat,
		OriginLng:        o.Coordinates.Lon,
		JourneyLength:    journeyLength,
		HTMLInstructions: instructions,
	}
}
