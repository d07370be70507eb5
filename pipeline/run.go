// Package pipeline provides monitoring run orchestration.
// It coordinates listing scans, detail extraction, delivery, and
// notification state for all configured sources.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/mkowalik/newswatch"
)

// ECodeDelivery marks errors from the delivery leg of item processing.
// Read failures are recoverable per item; delivery failures are not,
// because a partially delivered item must not be retried blindly.
const ECodeDelivery = "delivery"

// Runner orchestrates one monitoring run across all sources.
// Items are processed sequentially so that delivery order matches
// listing order and the state file never runs ahead of deliveries.
type Runner struct {
	Fetcher newswatch.Fetcher
	Scanner newswatch.Scanner
	Images  newswatch.ImageFetcher

	// Extractors maps source names to their detail extractors; each
	// extractor carries its source's content selector.
	Extractors map[string]newswatch.Extractor

	// Notifiers maps recipient keys to their delivery transports.
	Notifiers map[string]newswatch.Notifier

	States  newswatch.StateStore
	Sources []newswatch.Source

	// TargetDate restricts the run to items carrying this display date.
	// Empty means no date filter.
	TargetDate string

	Logger *slog.Logger
}

// Result holds the outcome of a run.
type Result struct {
	// Posted counts items delivered and recorded during this run.
	Posted int

	// Skipped counts items that were already recorded as notified.
	Skipped int

	// Failed counts items (or whole sources) that could not be read and
	// were passed over. Failed items are retried naturally on the next run.
	Failed int
}

// Run executes one monitoring pass. Source read failures are logged and
// skipped; a delivery failure aborts the run after persisting the state
// accumulated so far, so completed items are never re-delivered.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	state, err := r.States.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, source := range r.Sources {
		notifier, ok := r.Notifiers[source.Recipient]
		if !ok {
			return result, newswatch.Errorf(newswatch.EINTERNAL,
				"no notifier wired for recipient %q", source.Recipient)
		}
		extractor, ok := r.Extractors[source.Name]
		if !ok {
			return result, newswatch.Errorf(newswatch.EINTERNAL,
				"no extractor wired for source %q", source.Name)
		}

		items, err := r.Scanner.Scan(ctx, source)
		if err != nil {
			logger.Error("listing scan failed, skipping source",
				"source", source.Name, "error", err)
			result.Failed++
			continue
		}

		for _, item := range items {
			if r.TargetDate != "" && item.Date != r.TargetDate {
				continue
			}
			if state.IsNotified(source.Recipient, item.URL) {
				result.Skipped++
				continue
			}

			if err := r.processItem(ctx, source, item, extractor, notifier); err != nil {
				if newswatch.ErrorCode(err) == ECodeDelivery {
					// Delivery failed mid-item. Persist what was
					// completed before surfacing the failure.
					if saveErr := r.States.Save(ctx, state); saveErr != nil {
						logger.Error("state save failed during abort", "error", saveErr)
					}
					return result, err
				}
				logger.Error("item failed, skipping",
					"source", source.Name, "url", item.URL, "error", err)
				result.Failed++
				continue
			}

			state.MarkNotified(source.Recipient, item.URL)
			result.Posted++
			logger.Info("item posted",
				"source", source.Name, "url", item.URL, "date", item.Date)
		}
	}

	if err := r.States.Save(ctx, state); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Runner) processItem(ctx context.Context, source newswatch.Source, item newswatch.Item, extractor newswatch.Extractor, notifier newswatch.Notifier) error {
	html, err := r.Fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return err
	}

	detail, err := extractor.Extract(html, item.URL)
	if err != nil {
		return err
	}

	// The listing-supplied date wins; the date found in the detail page
	// text is only a fallback.
	date := item.Date
	if date == "" {
		date = detail.Date
	}

	body := newswatch.NormalizeBody(detail.Paragraphs, item.Title, item.Category, date,
		source.Categories, source.CutMarkers)

	for _, segment := range newswatch.BuildSegments(item.Title, item.URL, body) {
		if err := notifier.Send(ctx, segment); err != nil {
			return newswatch.Errorf(ECodeDelivery, "send segment for %s: %v", item.URL, err)
		}
	}

	if len(detail.ImageURLs) > 0 {
		images, err := r.Images.FetchImages(ctx, detail.ImageURLs)
		if err != nil {
			return err
		}
		if len(images) > 0 {
			if err := notifier.SendImages(ctx, images); err != nil {
				return newswatch.Errorf(ECodeDelivery, "send images for %s: %v", item.URL, err)
			}
		}
	}

	return nil
}
