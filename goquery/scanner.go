// Package goquery provides goquery-based implementations of the
// newswatch.Scanner and newswatch.Extractor interfaces for parsing the
// source site's listing and detail pages.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalik/newswatch"
	"golang.org/x/net/html"
)

// Ensure Scanner implements newswatch.Scanner at compile time.
var _ newswatch.Scanner = (*Scanner)(nil)

// Scanner parses listing pages into item references.
type Scanner struct {
	fetcher newswatch.Fetcher
}

// NewScanner creates a Scanner that retrieves listing pages via fetcher.
func NewScanner(fetcher newswatch.Fetcher) *Scanner {
	return &Scanner{fetcher: fetcher}
}

// Scan fetches every listing page of the source and returns the items they
// present, in source order. Duplicate URLs keep their first occurrence,
// within and across pages. A fetch failure for any page fails the call;
// no partial data is returned for a failed fetch.
func (s *Scanner) Scan(ctx context.Context, source newswatch.Source) ([]newswatch.Item, error) {
	seen := make(map[string]struct{})
	var items []newswatch.Item

	for _, listingURL := range source.ListingURLs {
		body, err := s.fetcher.Fetch(ctx, listingURL)
		if err != nil {
			return nil, err
		}

		parsed, err := parseListing(body, listingURL, source.LinkSelector)
		if err != nil {
			return nil, err
		}

		for _, item := range parsed {
			if _, ok := seen[item.URL]; ok {
				continue
			}
			seen[item.URL] = struct{}{}
			items = append(items, item)
		}
	}

	return items, nil
}

// parseListing extracts item references from one listing document.
// Anchors whose visible text carries no date token are not content items.
func parseListing(body, baseURL, selector string) ([]newswatch.Item, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, newswatch.Errorf(newswatch.EINVALID, "invalid listing URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, newswatch.Errorf(newswatch.EINVALID, "failed to parse listing HTML: %v", err)
	}

	var items []newswatch.Item
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		text := visibleText(sel)
		date := newswatch.DatePattern.FindString(text)
		if date == "" {
			return
		}

		category, title := splitCategoryTitle(strings.TrimSpace(strings.ReplaceAll(text, date, "")))

		items = append(items, newswatch.Item{
			URL:      resolved,
			Date:     date,
			Category: category,
			Title:    title,
		})
	})

	return items, nil
}

// splitCategoryTitle splits the anchor text (date already removed) into a
// leading category token and the trailing title. Single-token text is both
// the category and the title.
func splitCategoryTitle(rest string) (category, title string) {
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return "", ""
	}
	category = parts[0]
	if len(parts) >= 2 {
		return category, strings.TrimSpace(strings.TrimPrefix(rest, category))
	}
	return category, rest
}

// visibleText returns the anchor's text with a space between text nodes and
// whitespace runs collapsed. Nested inline elements frequently carry the
// date, category, and title in separate nodes with no whitespace between
// them, so plain text concatenation would fuse the tokens.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if trimmed := strings.Join(strings.Fields(n.Data), " "); trimmed != "" {
			*parts = append(*parts, trimmed)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// resolveURL resolves a relative href against the listing URL.
// Returns empty string for unparseable or non-HTTP results.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
