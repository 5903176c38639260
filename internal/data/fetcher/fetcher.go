package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrFeedUnavailable marks any transport-level failure acquiring the
// feed. Callers treat all such failures uniformly as "refresh failed".
var ErrFeedUnavailable = errors.New("feed unavailable")

// Fetcher acquires the raw feed text.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// New returns a fetcher appropriate for the source: HTTP(S) URLs get an
// HTTPFetcher, anything else is treated as a local file path.
func New(source string) Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPFetcher(source)
	}
	return NewFileFetcher(source)
}

// HTTPFetcher fetches the feed over HTTP, defeating intermediary caches
// so every refresh observes the true current data.
type HTTPFetcher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher for the given feed URL.
func NewHTTPFetcher(feedURL string) *HTTPFetcher {
	return &HTTPFetcher{
		url:        feedURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves the feed body. Non-2xx statuses and transport errors
// are both reported as ErrFeedUnavailable.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cacheBustedURL(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrFeedUnavailable, err)
	}

	return string(body), nil
}

// cacheBustedURL appends a timestamp query parameter so each request
// has a unique URL.
func (f *HTTPFetcher) cacheBustedURL() string {
	u, err := url.Parse(f.url)
	if err != nil {
		return f.url
	}

	q := u.Query()
	q.Set("_", strconv.FormatInt(time.Now().UnixNano(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}
