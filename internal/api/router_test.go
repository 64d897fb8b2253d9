package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"venue-finder-service/internal/adapters/googlemaps"
	"venue-finder-service/internal/adapters/share"
	"venue-finder-service/internal/api/handlers"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/services"

	"github.com/stretchr/testify/require"
)

func newMockProvider() *googlemaps.MockProvider {
	p := googlemaps.NewMockProvider().
		AddLocation("London", domain.Coordinates{Lon: -0.1276, Lat: 51.5072}).
		AddLocation("Oxford", domain.Coordinates{Lon: -1.2577, Lat: 51.752})

	for i := 0; i < 4; i++ {
		v := domain.VenueCandidate{
			PlaceID:  fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Venue %d", i),
			Address:  "Somewhere",
			Location: domain.Coordinates{Lon: -0.69 - float64(i)/100, Lat: 51.63},
		}
		rating := 4.0
		p.AddVenue(v, domain.PlaceDetails{Rating: &rating, OpeningHours: &domain.ProviderHours{}}, "")
		for _, origin := range []string{"London", "Oxford"} {
			p.AddRoute(origin, v.Location.LatLng(), []domain.DirectionsRoute{{
				Legs: []domain.DirectionsLeg{{DurationText: "40 mins", Steps: []string{"Go"}}},
			}})
		}
	}
	return p
}

func newTestServer(t *testing.T, finder handlers.PlaceFinder, staticDir string) *httptest.Server {
	t.Helper()
	if finder == nil {
		finder = services.NewPlaceFinder(newMockProvider(), 3, 4)
	}
	srv := httptest.NewServer(NewRouter(RouterConfig{
		Finder:    finder,
		Shares:    services.NewShareService(share.NewMemoryStore()),
		StaticDir: staticDir,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, readBody(t, resp))
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = post(t, srv.URL+"/health", `{}`)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestPostLocationInputs(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	bodies := map[string]string{
		"encoded string": `{"data": "{\"locations\": [\"London\", \"Oxford\"], \"category\": \"Restaurants\"}"}`,
		"object":         `{"data": {"locations": ["London", "Oxford"], "category": "Restaurants"}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			resp := post(t, srv.URL+"/post-location-inputs", body)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var got []map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			require.Len(t, got, 3)

			first := got[0]
			require.Equal(t, "Venue 0", first["name"])
			require.Equal(t, "None provided", first["phone_number"])
			require.Equal(t, "None specified", first["opening_hours"])
			require.Equal(t, "-1", first["price_level"])
			require.Equal(t, "4.0", first["rating"])
			require.Equal(t, domain.PlaceholderPhotoURL, first["photo_url"])

			routes := first["routes"].([]any)
			require.Len(t, routes, 2)
			london := routes[0].(map[string]any)
			require.Equal(t, "London", london["origin"])
			require.Equal(t, "51.5072", london["origin_lat"])
			require.Equal(t, "-0.1276", london["origin_lng"])
			require.Equal(t, "40 mins", london["journey_length"])
			require.Equal(t, []any{"Go"}, london["html_instructions"])
			require.Equal(t, "Oxford", routes[1].(map[string]any)["origin"])
		})
	}
}

func TestPostLocationInputsBadRequests(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	cases := map[string]string{
		"not json":          `{"data":`,
		"missing data":      `{}`,
		"null data":         `{"data": null}`,
		"unknown field":     `{"data": {}, "extra": 1}`,
		"garbage string":    `{"data": "not json"}`,
		"two objects":       `{"data": {}} {"data": {}}`,
		"no locations":      `{"data": {"locations": [], "category": "Restaurants"}}`,
		"no category":       `{"data": {"locations": ["London"], "category": ""}}`,
		"blank location":    `{"data": {"locations": ["London", "  "], "category": "Bars"}}`,
		"locations wrong t": `{"data": {"locations": "London", "category": "Bars"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := post(t, srv.URL+"/post-location-inputs", body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var got map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			require.NotEmpty(t, got["error"])
		})
	}

	resp, err := http.Get(srv.URL + "/post-location-inputs")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

type stubFinder struct{ err error }

func (s stubFinder) FindPlaces(context.Context, services.FindPlacesRequest) ([]domain.PlaceResult, error) {
	return nil, s.err
}

func TestPostLocationInputsErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrGeocodingFailure), http.StatusUnprocessableEntity},
		{fmt.Errorf("x: %w", domain.ErrSearchFailure), http.StatusBadGateway},
		{fmt.Errorf("x: %w", domain.ErrDetailFetchFailure), http.StatusBadGateway},
		{fmt.Errorf("x: %w", domain.ErrDirectionsFailure), http.StatusBadGateway},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			srv := newTestServer(t, stubFinder{err: tc.err}, t.TempDir())
			resp := post(t, srv.URL+"/post-location-inputs", `{"data": {"locations": ["London"], "category": "Bars"}}`)
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestShareLinkRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	resp := post(t, srv.URL+"/post-location-inputs", `{"data": {"locations": ["London", "Oxford"], "category": "Restaurants"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	places := readBody(t, resp)

	createBody, err := json.Marshal(map[string]any{
		"data": map[string]json.RawMessage{"nearest_places": json.RawMessage(places)},
	})
	require.NoError(t, err)
	resp = post(t, srv.URL+"/generate-share-link", string(createBody))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	id := readBody(t, resp)
	require.NotEmpty(t, id)

	resp = post(t, srv.URL+"/get-share", fmt.Sprintf(`{"data": "{\"id\": \"%s\"}"}`, id))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		NearestPlaces json.RawMessage `json:"nearest_places"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.JSONEq(t, places, string(got.NearestPlaces))
}

func TestShareLinkKeepsUnknownFields(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())
	places := `[{"name":"X","lat":"51.5","extra":"kept?","routes":[]}]`

	resp := post(t, srv.URL+"/generate-share-link", `{"data": {"nearest_places": `+places+`}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := readBody(t, resp)

	resp = post(t, srv.URL+"/get-share", fmt.Sprintf(`{"data": {"id": %q}}`, id))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"nearest_places": `+places+`}`, readBody(t, resp))
}

func TestShareLinkRejectsNonArray(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	for _, body := range []string{
		`{"data": {"nearest_places": {"name": "X"}}}`,
		`{"data": {"nearest_places": "X"}}`,
	} {
		resp := post(t, srv.URL+"/generate-share-link", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestShareLinkWithoutPlaces(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	resp := post(t, srv.URL+"/generate-share-link", `{"data": {}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := readBody(t, resp)

	resp = post(t, srv.URL+"/get-share", fmt.Sprintf(`{"data": {"id": %q}}`, id))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"nearest_places": []}`, readBody(t, resp))
}

func TestGetShareUnknownID(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	resp := post(t, srv.URL+"/get-share", `{"data": {"id": "does-not-exist"}}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.JSONEq(t, `{"error": "share link not found"}`, readBody(t, resp))

	resp = post(t, srv.URL+"/get-share", `{"data": {"id": ""}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	srv := httptest.NewServer(NewRouter(RouterConfig{
		Finder:         stubFinder{},
		Shares:         services.NewShareService(share.NewMemoryStore()),
		StaticDir:      t.TempDir(),
		AllowedOrigins: []string{"https://meet.example.com"},
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/post-location-inputs", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://meet.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "https://meet.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")

	require.Equal(t, "*", resolveOrigin("https://other.example.com", nil))
	require.Equal(t, "https://a.example.com", resolveOrigin("https://other.example.com", []string{"https://a.example.com"}))
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "app.js"), []byte("console.log(1)"), 0o644))
	srv := newTestServer(t, nil, dir)

	for path, want := range map[string]string{
		"/":              "<html>app</html>",
		"/static/app.js": "console.log(1)",
		"/share/abc":     "<html>app</html>",
		"/static":        "<html>app</html>",
		"/../etc/passwd": "<html>app</html>",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Equal(t, want, readBody(t, resp), path)
		resp.Body.Close()
	}
}

func TestStaticMissingIndex(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	resp, err := http.Get(srv.URL + "/anything")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, t.TempDir())

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "venuefinder_geocode_cache_hits_total")
}
