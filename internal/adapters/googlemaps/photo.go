package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"venue-finder-service/internal/platform/obs"
)

// ResolvePhoto asks the photo endpoint (/maps/api/place/photo) for its
// redirect and returns the Location target without fetching the image.
// A response that is not a redirect yields "" so the caller falls back to
// the placeholder and the request URL, which carries the API key, never
// reaches a client.
func (c *Client) ResolvePhoto(ctx context.Context, reference string) (_ string, err error) {
	defer obs.Time(ctx, "maps.ResolvePhoto")(&err)

	if strings.TrimSpace(reference) == "" {
		return "", errors.New("resolve photo: reference must be non-empty")
	}

	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(c.photoMaxWidth))
	params.Set("photoreference", reference)

	resp, err := c.doWithRetry(ctx, c.photoSession, "photo", func() (*http.Request, error) {
		return c.newRequest(ctx, "/maps/api/place/photo", params)
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && he.Code < 500 && he.Code != http.StatusTooManyRequests {
			slog.WarnContext(ctx, "photo endpoint rejected reference", "status", he.Code)
			return "", nil
		}
		return "", fmt.Errorf("resolve photo: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		slog.WarnContext(ctx, "photo endpoint did not redirect", "status", resp.StatusCode)
		return "", nil
	}

	target, err := resp.Location()
	if err != nil {
		slog.WarnContext(ctx, "photo redirect without location", "status", resp.StatusCode)
		return "", nil
	}

	return target.String(), nil
}
