package domain

import (
	"fmt"
	"strconv"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// LatLng formats the pair the way the directions provider expects a
// destination: "lat, lng".
func (c Coordinates) LatLng() string {
	return formatDegrees(c.Lat) + ", " + formatDegrees(c.Lon)
}

// Query formats the pair as a "lat,lng" query parameter.
func (c Coordinates) Query() string {
	return fmt.Sprintf("%s,%s", formatDegrees(c.Lat), formatDegrees(c.Lon))
}

// Centroid returns the component-wise arithmetic mean of coords.
func Centroid(coords []Coordinates) (Coordinates, error) {
	if len(coords) == 0 {
		return Coordinates{}, fmt.Errorf("%w: centroid of empty coordinate list", ErrInvalidInput)
	}

	var sumLon, sumLat float64
	for _, c := range coords {
		sumLon += c.Lon
		sumLat += c.Lat
	}

	n := float64(len(coords))
	return Coordinates{Lon: sumLon / n, Lat: sumLat / n}, nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
