// Package transport fetches the remote manifest document.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	log "github.com/sirupsen/logrus"
)

// Fetcher retrieves a document as text.
type Fetcher interface {
	Fetch(ctx context.Context, url, userAgent string) (string, error)
}

// Error reports a failed fetch. StatusCode is zero when no response was
// received.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPFetcher performs a single GET per call. Retries are left to the caller.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher with its own connection pool. A zero
// timeout means no client timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	client := cleanhttp.DefaultClient()
	client.Timeout = timeout
	return &HTTPFetcher{client: client}
}

// NewHTTPFetcherWithClient is used by tests to point at an httptest server.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url, userAgent string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	log.WithFields(log.Fields{
		"url":       url,
		"userAgent": userAgent,
	}).Debug("Fetching manifest")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	log.WithField("bytes", len(body)).Debug("Fetched manifest")
	return string(body), nil
}
