package newswatch

import (
	"context"
	"regexp"
	"time"
)

// DatePattern matches the display-date token used by the source site,
// e.g. "2026.01.05".
var DatePattern = regexp.MustCompile(`\b20\d{2}\.\d{2}\.\d{2}\b`)

// DateLayout is the Go time layout for DatePattern dates.
const DateLayout = "2006.01.02"

// FormatDate renders a time in the site's display-date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Item is a reference to a single entry on a listing page.
// The URL is the natural key; it is unique within a scan result.
type Item struct {
	URL      string `json:"url"`
	Date     string `json:"date"`     // site display format, e.g. "2026.01.05"
	Category string `json:"category"` // category label, or author name for blogs
	Title    string `json:"title"`
}

// Validate returns an error if the item contains invalid fields.
func (i *Item) Validate() error {
	if i.URL == "" {
		return Errorf(EINVALID, "item URL required")
	}
	if i.Date == "" {
		return Errorf(EINVALID, "item date required")
	}
	return nil
}

// Scanner parses listing pages into ordered item references.
type Scanner interface {
	// Scan fetches the source's listing pages and returns the items they
	// present, in source order, deduplicated by URL (first occurrence wins).
	// Anchors without a recognizable date token are not items and are
	// discarded. A fetch failure for any listing page fails the whole call.
	Scan(ctx context.Context, source Source) ([]Item, error)
}
