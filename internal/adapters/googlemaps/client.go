package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/metrics"
	"venue-finder-service/internal/platform/obs"
	"venue-finder-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Client implements the maps provider ports using Google Maps Web Services.
//
// It coordinates:
//   - Geocoding, text search, place details, photo and directions calls
//   - Optional persistent geocode caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	session       *http.Client
	photoSession  *http.Client
	apiKey        string
	baseURL       string
	maxAttempts   int
	baseBackoff   time.Duration
	photoMaxWidth int
	concurrency   int
	geocodeCache  ports.GeocodeCache
}

type Options struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	MaxAttempts   int
	PhotoMaxWidth int
	// Concurrency bounds parallel provider calls inside GeocodeMany.
	Concurrency  int
	GeocodeCache ports.GeocodeCache
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	c := &Client{
		session:       opts.HTTPClient,
		apiKey:        opts.APIKey,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		maxAttempts:   opts.MaxAttempts,
		baseBackoff:   200 * time.Millisecond,
		photoMaxWidth: opts.PhotoMaxWidth,
		concurrency:   opts.Concurrency,
		geocodeCache:  opts.GeocodeCache,
	}

	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = 3
	}
	if c.photoMaxWidth <= 0 {
		c.photoMaxWidth = 1600
	}
	if c.concurrency <= 0 {
		c.concurrency = 4
	}
	if c.session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		c.session = &http.Client{Timeout: timeout}
	}

	// The photo endpoint is only asked for its redirect target.
	photo := *c.session
	photo.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	c.photoSession = &photo

	return c, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (c *Client) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GeocodeMany resolves many addresses, consulting the persistent cache first
// and geocoding only the misses. Result keys are the caller's inputs.
func (c *Client) GeocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "maps.GeocodeMany")(&err)

	if len(addresses) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := make(map[string]struct{}, len(addresses))
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		norm := c.normalize(a)
		if norm == "" {
			return nil, fmt.Errorf("geocode many: address must be non-empty")
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		uniq = append(uniq, norm)
	}

	hits := make(map[string]domain.Coordinates)
	// Check persistent geocode cache before issuing external API calls.
	if c.geocodeCache != nil {
		cached, err := c.geocodeCache.GetMany(ctx, uniq)
		if err != nil {
			slog.WarnContext(ctx, "geocode cache read failed", "err", err)
		} else {
			hits = cached
		}
	}

	misses := make([]string, 0, len(uniq))
	for _, a := range uniq {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}
	metrics.GeocodeCacheHitsTotal.Add(float64(len(uniq) - len(misses)))
	metrics.GeocodeCacheMissesTotal.Add(float64(len(misses)))

	fresh := make([]domain.Coordinates, len(misses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, a := range misses {
		i, a := i, a
		g.Go(func() error {
			coords, err := c.Geocode(gctx, a)
			if err != nil {
				return err
			}
			fresh[i] = coords
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if c.geocodeCache != nil && len(misses) > 0 {
		toStore := make(map[string]domain.Coordinates, len(misses))
		for i, a := range misses {
			toStore[a] = fresh[i]
		}
		if err := c.geocodeCache.PutMany(ctx, toStore); err != nil {
			slog.WarnContext(ctx, "geocode cache write failed", "err", err)
		}
	}

	coords := make(map[string]domain.Coordinates, len(hits)+len(misses))
	for k, v := range hits {
		coords[k] = v
	}
	for i, a := range misses {
		coords[a] = fresh[i]
	}

	out := make(map[string]domain.Coordinates, len(addresses))
	for _, a := range addresses {
		coord, ok := coords[c.normalize(a)]
		if !ok {
			return nil, fmt.Errorf("missing coordinate for %q", a)
		}
		out[a] = coord
	}

	return out, nil
}

var (
	_ ports.MapsProvider  = (*Client)(nil)
	_ ports.BatchGeocoder = (*Client)(nil)
)
