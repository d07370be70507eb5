package mock

import (
	"context"

	"github.com/mkowalik/newswatch"
)

var _ newswatch.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of newswatch.Notifier.
type Notifier struct {
	SendFn       func(ctx context.Context, segment newswatch.Segment) error
	SendImagesFn func(ctx context.Context, images []newswatch.Image) error
}

func (n *Notifier) Send(ctx context.Context, segment newswatch.Segment) error {
	return n.SendFn(ctx, segment)
}

func (n *Notifier) SendImages(ctx context.Context, images []newswatch.Image) error {
	return n.SendImagesFn(ctx, images)
}
