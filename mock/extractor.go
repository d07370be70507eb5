package mock

import "github.com/mkowalik/newswatch"

var _ newswatch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newswatch.Extractor.
type Extractor struct {
	ExtractFn func(html string, baseURL string) (*newswatch.Detail, error)
}

func (e *Extractor) Extract(html string, baseURL string) (*newswatch.Detail, error) {
	return e.ExtractFn(html, baseURL)
}
