package newswatch

// Detail holds the content extracted from one item's detail page.
type Detail struct {
	// URL is the detail page locator the content came from.
	URL string

	// Date is the first display-date token found in the page text,
	// or empty if none was found. The listing-supplied date takes
	// precedence over this fallback.
	Date string

	// Paragraphs is the body text at paragraph granularity, in document
	// order, with whitespace runs collapsed. Explicit line breaks within
	// a paragraph survive as newline characters.
	Paragraphs []string

	// ImageURLs are absolute image locators found in the content region,
	// filtered and deduplicated, in first-seen order.
	ImageURLs []string
}

// Extractor extracts body text and image locators from a detail document.
type Extractor interface {
	// Extract parses the raw HTML of a detail page. Non-content elements
	// (scripts, styles, headers, footers, navigation) are removed before
	// traversal. Relative image locators are resolved against baseURL.
	Extract(html string, baseURL string) (*Detail, error)
}
