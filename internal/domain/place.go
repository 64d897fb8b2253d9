package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Fallback values substituted when the details provider omits a field.
const (
	NotProvided         = "None provided"
	HoursUnspecified    = "None specified"
	UnknownLevel        = "-1"
	PlaceholderPhotoURL = "https://i.ytimg.com/vi/if-2M3K1tqk/maxresdefault.jpg"
)

// Represents a venue returned by the places search, in provider relevance order.
type VenueCandidate struct {
	PlaceID  string
	Name     string
	Address  string
	Location Coordinates
}

// PlaceDetails is the raw details payload. A nil field means the provider
// did not send it; absence is normal and never an error.
type PlaceDetails struct {
	PhoneNumber     *string
	OpeningHours    *ProviderHours
	MapsURL         *string
	PhotoReferences []string
	PriceLevel      *int
	Rating          *float64
}

// ProviderHours carries structured opening hours. WeekdayText is nil when the
// provider sent hours without per-day text.
type ProviderHours struct {
	WeekdayText []string
}

// FirstPhotoReference reports the first photo reference, if any.
func (d PlaceDetails) FirstPhotoReference() (string, bool) {
	for _, ref := range d.PhotoReferences {
		if strings.TrimSpace(ref) != "" {
			return ref, true
		}
	}
	return "", false
}

// VenueDetail is the resolved detail bundle; every field holds a value.
type VenueDetail struct {
	PhoneNumber  string
	OpeningHours OpeningHours
	MapsURL      string
	PhotoURL     string
	PriceLevel   string
	Rating       string
}

// ResolveVenueDetail applies the per-field fallback policy. photoURL is the
// already resolved image URL, or empty when the venue has no usable photo.
func ResolveVenueDetail(d PlaceDetails, photoURL string) VenueDetail {
	out := VenueDetail{
		PhoneNumber: NotProvided,
		MapsURL:     NotProvided,
		PhotoURL:    PlaceholderPhotoURL,
		PriceLevel:  UnknownLevel,
		Rating:      UnknownLevel,
	}

	if d.PhoneNumber != nil {
		out.PhoneNumber = *d.PhoneNumber
	}

	switch {
	case d.OpeningHours == nil:
		out.OpeningHours = OpeningHours{Lines: []string{NotProvided}}
	case d.OpeningHours.WeekdayText == nil:
		out.OpeningHours = OpeningHours{Unspecified: true}
	default:
		out.OpeningHours = OpeningHours{Lines: d.OpeningHours.WeekdayText}
	}

	if d.MapsURL != nil {
		out.MapsURL = *d.MapsURL
	}
	if photoURL != "" {
		out.PhotoURL = photoURL
	}
	if d.PriceLevel != nil {
		out.PriceLevel = strconv.Itoa(*d.PriceLevel)
	}
	if d.Rating != nil {
		out.Rating = formatRating(*d.Rating)
	}

	return out
}

// formatRating keeps at least one fractional digit ("4.0", "4.5").
func formatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// OpeningHours is a list of weekday lines, or the bare "None specified"
// marker when the provider had hours but no weekday text. Decoding rejects
// any other bare string.
type OpeningHours struct {
	Lines       []string
	Unspecified bool
}

func (h OpeningHours) MarshalJSON() ([]byte, error) {
	if h.Unspecified {
		return json.Marshal(HoursUnspecified)
	}
	lines := h.Lines
	if lines == nil {
		lines = []string{}
	}
	return json.Marshal(lines)
}

func (h *OpeningHours) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var marker string
	if err := json.Unmarshal(b, &marker); err == nil {
		if marker != HoursUnspecified {
			return fmt.Errorf("decode opening hours: unexpected string %q", marker)
		}
		*h = OpeningHours{Unspecified: true}
		return nil
	}

	var lines []string
	if err := json.Unmarshal(b, &lines); err != nil {
		return fmt.Errorf("decode opening hours: %w", err)
	}
	*h = OpeningHours{Lines: lines}
	return nil
}

// PlaceResult is one fully assembled venue: candidate, details, and one
// RouteInfo per participant in input order.
type PlaceResult struct {
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	PhoneNumber  string       `json:"phone_number"`
	OpeningHours OpeningHours `json:"opening_hours"`
	PriceLevel   string       `json:"price_level"`
	Rating       string       `json:"rating"`
	MapsURL      string       `json:"maps_url"`
	Lat          float64      `json:"lat"`
	Lng          float64      `json:"lng"`
	Routes       []RouteInfo  `json:"routes"`
	PhotoURL     string       `json:"photo_url"`
}

func NewPlaceResult(c VenueCandidate, d VenueDetail, routes []RouteInfo) PlaceResult {
	if routes == nil {
		routes = []RouteInfo{}
	}
	return PlaceResult{
		Name:         c.Name,
		Address:      c.Address,
		PhoneNumber:  d.PhoneNumber,
		OpeningHours: d.OpeningHours,
		PriceLevel:   d.PriceLevel,
		Rating:       d.Rating,
		MapsURL:      d.MapsURL,
		Lat:          c.Location.Lat,
		Lng:          c.Location.Lon,
		Routes:       routes,
		PhotoURL:     d.PhotoURL,
	}
}
