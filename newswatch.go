// Package newswatch monitors paginated listing pages of a content site,
// detects newly published items, extracts a clean textual representation
// and images from each item's detail page, and delivers them to a webhook
// transport exactly once per item.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, discord/, fs/).
package newswatch
