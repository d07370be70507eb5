package newswatch

import "context"

// Notifier delivers outgoing content to one recipient's transport endpoint.
// Implementations handle retry on transient failures, pacing between
// successive messages, and the transport's wire format.
type Notifier interface {
	// Send delivers one segment. It retries transient failures with
	// backoff and returns an EUNAVAILABLE error once the retry budget is
	// exhausted; non-transient rejections fail immediately.
	Send(ctx context.Context, segment Segment) error

	// SendImages delivers an attachment batch as a single message.
	// Callers should not call it with an empty batch.
	SendImages(ctx context.Context, images []Image) error
}
