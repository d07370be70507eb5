package mock

import (
	"context"

	"github.com/mkowalik/newswatch"
)

var _ newswatch.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of newswatch.Scanner.
type Scanner struct {
	ScanFn func(ctx context.Context, source newswatch.Source) ([]newswatch.Item, error)
}

func (s *Scanner) Scan(ctx context.Context, source newswatch.Source) ([]newswatch.Item, error) {
	return s.ScanFn(ctx, source)
}
