// Package slog provides logging decorators for newswatch interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowalik/newswatch"
)

// Ensure LoggingNotifier implements newswatch.Notifier.
var _ newswatch.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with structured delivery logging.
type LoggingNotifier struct {
	next      newswatch.Notifier
	recipient string
	logger    *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next newswatch.Notifier, recipient string, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, recipient: recipient, logger: logger}
}

// Send delegates to the wrapped notifier, logging the outcome.
func (n *LoggingNotifier) Send(ctx context.Context, segment newswatch.Segment) error {
	begin := time.Now()
	err := n.next.Send(ctx, segment)

	kind := "primary"
	if segment.Kind == newswatch.SegmentOverflow {
		kind = "overflow"
	}

	if err != nil {
		n.logger.Error("segment delivery failed",
			"recipient", n.recipient,
			"kind", kind,
			"chars", len([]rune(segment.Text)),
			"duration", time.Since(begin),
			"error", err,
		)
		return err
	}

	n.logger.Info("segment delivered",
		"recipient", n.recipient,
		"kind", kind,
		"chars", len([]rune(segment.Text)),
		"duration", time.Since(begin),
	)
	return nil
}

// SendImages delegates to the wrapped notifier, logging the outcome.
func (n *LoggingNotifier) SendImages(ctx context.Context, images []newswatch.Image) error {
	begin := time.Now()
	err := n.next.SendImages(ctx, images)

	var bytes int
	for _, img := range images {
		bytes += len(img.Data)
	}

	if err != nil {
		n.logger.Error("image batch delivery failed",
			"recipient", n.recipient,
			"count", len(images),
			"bytes", bytes,
			"duration", time.Since(begin),
			"error", err,
		)
		return err
	}

	n.logger.Info("image batch delivered",
		"recipient", n.recipient,
		"count", len(images),
		"bytes", bytes,
		"duration", time.Since(begin),
	)
	return nil
}
