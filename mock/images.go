package mock

import (
	"context"

	"github.com/mkowalik/newswatch"
)

var _ newswatch.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of newswatch.ImageFetcher.
type ImageFetcher struct {
	FetchImagesFn func(ctx context.Context, urls []string) ([]newswatch.Image, error)
}

func (f *ImageFetcher) FetchImages(ctx context.Context, urls []string) ([]newswatch.Image, error) {
	return f.FetchImagesFn(ctx, urls)
}
