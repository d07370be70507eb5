package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/mkowalik/newswatch"
)

// allowedImageTypes is the accepted response content-type allowlist.
// The response's declared type is checked, not just the locator's
// extension, to defend against extension spoofing.
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// Ensure ImageFetcher implements newswatch.ImageFetcher at compile time.
var _ newswatch.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads and validates candidate images.
// Individual failures are skipped, never escalated; a partial or empty
// result is acceptable.
type ImageFetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// ImageOption configures an ImageFetcher.
type ImageOption func(*ImageFetcher)

// WithImageTimeout sets the per-image request timeout.
// Defaults to DefaultFetchTimeout.
func WithImageTimeout(d time.Duration) ImageOption {
	return func(f *ImageFetcher) {
		f.client.Timeout = d
	}
}

// WithImageLogger sets the logger for skipped-image diagnostics.
func WithImageLogger(logger *slog.Logger) ImageOption {
	return func(f *ImageFetcher) {
		f.logger = logger
	}
}

// NewImageFetcher creates a new HTTP-based ImageFetcher.
func NewImageFetcher(opts ...ImageOption) *ImageFetcher {
	f := &ImageFetcher{
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		userAgent: DefaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchImages fetches up to newswatch.MaxImagesPerItem of the candidate
// locators, earliest-discovered first, and returns the accepted images with
// sequential filenames. Oversized payloads, unacceptable content types, and
// fetch failures are skipped.
func (f *ImageFetcher) FetchImages(ctx context.Context, urls []string) ([]newswatch.Image, error) {
	if len(urls) > newswatch.MaxImagesPerItem {
		urls = urls[:newswatch.MaxImagesPerItem]
	}

	var images []newswatch.Image
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return images, err
		}

		data, err := f.fetchOne(ctx, u)
		if err != nil {
			f.logger.Debug("image skipped", "url", u, "reason", err)
			continue
		}

		images = append(images, newswatch.Image{
			Filename: fmt.Sprintf("image_%02d%s", len(images)+1, imageExt(u)),
			Data:     data,
		})
	}

	return images, nil
}

func (f *ImageFetcher) fetchOne(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newswatch.Errorf(newswatch.EUNAVAILABLE, "HTTP %d", resp.StatusCode)
	}

	if !acceptableImageType(resp.Header.Get("Content-Type")) {
		return nil, newswatch.Errorf(newswatch.EINVALID, "content type %q not an accepted image format", resp.Header.Get("Content-Type"))
	}

	// Read one byte past the ceiling to detect oversized payloads without
	// buffering arbitrarily large responses.
	data, err := io.ReadAll(io.LimitReader(resp.Body, newswatch.MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > newswatch.MaxImageBytes {
		return nil, newswatch.Errorf(newswatch.EINVALID, "payload exceeds %d bytes", newswatch.MaxImageBytes)
	}

	return data, nil
}

// acceptableImageType checks the declared media type against the allowlist,
// ignoring any parameters.
func acceptableImageType(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	for _, allowed := range allowedImageTypes {
		if mediaType == allowed {
			return true
		}
	}
	return false
}

// imageExt derives the attachment extension from the locator path,
// defaulting to .jpg.
func imageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		return ".jpg"
	}
	return ext
}
