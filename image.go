package newswatch

import "context"

const (
	// MaxImagesPerItem caps how many image candidates are fetched per item.
	// Applied before any network access; earliest-discovered images win.
	MaxImagesPerItem = 10

	// MaxImageBytes is the per-image payload ceiling accepted by the
	// transport with a safety margin.
	MaxImageBytes = 7 << 20
)

// Image is a downloaded attachment ready for transport.
type Image struct {
	Filename string
	Data     []byte
}

// ImageFetcher downloads and validates candidate images.
type ImageFetcher interface {
	// FetchImages fetches up to MaxImagesPerItem of the given locators and
	// returns the accepted images with deterministic sequential filenames.
	// Images with an unacceptable content type or an oversized payload are
	// skipped, as are individual fetch failures; an empty result is valid.
	FetchImages(ctx context.Context, urls []string) ([]Image, error)
}
