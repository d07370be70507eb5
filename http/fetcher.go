// Package http provides HTTP-based implementations of newswatch.Fetcher and
// newswatch.ImageFetcher for retrieving documents and images from the
// source site.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mkowalik/newswatch"
)

// DefaultFetchTimeout is the default timeout for document requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the monitor to the source site.
const DefaultUserAgent = "Mozilla/5.0 (compatible; newswatch/1.0)"

// Ensure Fetcher implements newswatch.Fetcher at compile time.
var _ newswatch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents from URLs using plain HTTP requests.
// The source site is server-rendered, so no JavaScript execution is needed.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the identifying User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at the given URL.
// Non-2xx responses are an error; no partial content is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newswatch.Errorf(newswatch.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
