package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	searchPath       = "/geocode/search"
	maxSearchTries   = 4
	firstRetryDelay  = 200 * time.Millisecond
	maxErrorBodySize = 4 << 10
	maxRetryAfter    = 5 * time.Second
)

// statusError is a non-2xx answer from the ORS API.
type statusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ors status %d: %s", e.Code, e.Body)
}

// searchRequest builds GET /geocode/search for one address, best match only.
func (g *ORSGeocoder) searchRequest(ctx context.Context, address string) (*http.Request, error) {
	q := url.Values{}
	q.Set("text", address)
	q.Set("size", "1")
	if g.country != "" {
		q.Set("boundary.country", g.country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", g.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")
	return req, nil
}

// send performs one search attempt and turns error statuses into *statusError.
func (g *ORSGeocoder) send(req *http.Request) (*http.Response, error) {
	resp, err := g.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}

	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	return nil, &statusError{
		Code:       resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
		RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
	}
}

// fetch sends the search for address, retrying throttling, gateway errors
// and network failures. The delay doubles per attempt and a longer
// Retry-After from the server wins.
func (g *ORSGeocoder) fetch(ctx context.Context, address string) (*http.Response, error) {
	delay := firstRetryDelay

	var (
		lastErr error
		attempt int
	)
	for attempt = 1; attempt <= maxSearchTries; attempt++ {
		req, err := g.searchRequest(ctx, address)
		if err != nil {
			return nil, err
		}

		resp, err := g.send(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retryable(err) || attempt == maxSearchTries {
			break
		}

		wait := delay
		var se *statusError
		if errors.As(err, &se) && se.RetryAfter > wait {
			wait = se.RetryAfter
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return nil, fmt.Errorf("after %d attempts: %w", min(attempt, maxSearchTries), lastErr)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// retryAfter reads a delay-seconds Retry-After header, capped at maxRetryAfter.
// Dates and junk give 0.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
