package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"venue-finder-service/internal/platform/metrics"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// apiStatus is the envelope every Maps Web Services JSON response carries.
type apiStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// APIError is a non-OK status reported inside a 200 response body.
type APIError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %s", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: status %s: %s", e.Endpoint, e.Status, e.Message)
}

// check accepts OK and ZERO_RESULTS; an empty result set is not an error.
func (s apiStatus) check(endpoint string) error {
	switch s.Status {
	case "OK", "ZERO_RESULTS":
		return nil
	}
	return &APIError{Endpoint: endpoint, Status: s.Status, Message: s.ErrorMessage}
}

func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) using exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(
	ctx context.Context,
	client *http.Client,
	endpoint string,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := c.baseBackoff

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(client, req)
		if err == nil {
			metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
			return resp, nil
		}
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) && ctx.Err() == nil {
			retry = true
		}

		if !retry || attempt == c.maxAttempts {
			return nil, lastErr
		}
		metrics.ProviderRetriesTotal.WithLabelValues(endpoint).Inc()

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// getJSON issues a GET against path, decodes the body into out and checks
// the response status envelope.
func (c *Client) getJSON(
	ctx context.Context,
	endpoint string,
	path string,
	params url.Values,
	out interface{ check(string) error },
) error {
	resp, err := c.doWithRetry(ctx, c.session, endpoint, func() (*http.Request, error) {
		return c.newRequest(ctx, path, params)
	})
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return out.check(endpoint)
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
