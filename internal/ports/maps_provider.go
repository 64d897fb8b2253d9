package ports

// MapsProvider bundles every external call the find-places pipeline needs.
// A single implementation must be safe for concurrent use.
type MapsProvider interface {
	Geocoder
	PlaceSearcher
	PlaceDetailer
	PhotoResolver
	DirectionsProvider
}
