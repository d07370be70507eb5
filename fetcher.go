package newswatch

import "context"

// Fetcher retrieves raw documents from URLs.
type Fetcher interface {
	// Fetch retrieves the document at the URL and returns its body as text.
	// A non-2xx response is an error; no partial content is returned.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
