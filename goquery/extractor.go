package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/mkowalik/newswatch"
	"golang.org/x/net/html"
)

// noiseElements are removed before any traversal. The noscript fallback in
// particular leaks "JavaScript disabled" strings into extracted text if left
// in place.
const noiseElements = "script, style, noscript, header, footer, nav"

// containerFallbacks is the content-region fallback chain, most specific
// first.
var containerFallbacks = []string{"main", "article", "body"}

// imageAttrs is the locator attribute preference order. Deferred-load
// attributes come first so placeholder assets in src are not captured.
var imageAttrs = []string{"data-src", "data-original", "data-lazy", "src"}

// allowedImageExts is the image path extension allowlist (lowercase).
var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// placeholderTokens mark tracking pixels and layout spacers.
var placeholderTokens = []string{"blank", "spacer", "pixel"}

// minBlockTextLen filters UI chrome when falling back to coarse block
// elements for body text.
const minBlockTextLen = 10

// dateScanLineLimit bounds the fallback date scan over extracted text.
const dateScanLineLimit = 200

// Ensure Extractor implements newswatch.Extractor at compile time.
var _ newswatch.Extractor = (*Extractor)(nil)

// Extractor parses detail pages into body paragraphs and image locators.
type Extractor struct {
	// ContentSelector optionally names the primary content region.
	// When empty or unmatched, extraction falls back through main,
	// article, and body.
	ContentSelector string
}

// NewExtractor creates an Extractor. contentSelector may be empty.
func NewExtractor(contentSelector string) *Extractor {
	return &Extractor{ContentSelector: contentSelector}
}

// Extract parses the detail document. Noise elements are removed before
// traversal; this is a correctness requirement, not an optimization, since
// several noise strings otherwise leak into the extracted text.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*newswatch.Detail, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, newswatch.Errorf(newswatch.EINVALID, "invalid detail URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newswatch.Errorf(newswatch.EINVALID, "failed to parse detail HTML: %v", err)
	}

	doc.Find(noiseElements).Remove()

	container := e.findContainer(doc)

	detail := &newswatch.Detail{
		URL:        baseURL,
		Paragraphs: extractParagraphs(container),
		ImageURLs:  extractImageURLs(container, base),
	}
	detail.Date = findDate(detail.Paragraphs)

	return detail, nil
}

// findContainer selects the most specific available content region,
// first match wins.
func (e *Extractor) findContainer(doc *goquery.Document) *goquery.Selection {
	selectors := containerFallbacks
	if e.ContentSelector != "" {
		selectors = append([]string{e.ContentSelector}, selectors...)
	}
	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

// extractImageURLs collects absolute image locators from the container,
// filtered and deduplicated in first-seen order.
func extractImageURLs(container *goquery.Selection, base *url.URL) []string {
	seen := make(map[string]struct{})
	var urls []string

	container.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		if src == "" {
			return
		}
		if strings.HasPrefix(strings.ToLower(src), "data:") {
			return
		}

		resolved := resolveURL(base, src)
		if resolved == "" || !acceptableImagePath(resolved) {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		urls = append(urls, resolved)
	})

	return urls
}

// imageSource returns the first present locator attribute in preference
// order.
func imageSource(img *goquery.Selection) string {
	for _, attr := range imageAttrs {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// acceptableImagePath checks the locator path against the extension
// allowlist and the placeholder token denylist.
func acceptableImagePath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)

	ok := false
	for _, ext := range allowedImageExts {
		if strings.HasSuffix(path, ext) {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}

	for _, token := range placeholderTokens {
		if strings.Contains(path, token) {
			return false
		}
	}
	return true
}

// extractParagraphs returns the container's body text at paragraph
// granularity. Whole-container text extraction interleaves deeply nested
// inline elements and produces one-character-per-line artifacts, so
// paragraph elements are rendered individually instead.
func extractParagraphs(container *goquery.Selection) []string {
	paragraphs := renderSelection(container.Find("p"))
	if len(paragraphs) > 0 {
		return paragraphs
	}
	return fallbackBlocks(container)
}

// fallbackBlocks extracts coarser block elements when the page has no
// paragraph markup, filtered by a minimum text length to avoid UI chrome,
// with near-identical blocks removed by whitespace-normalized equality.
func fallbackBlocks(container *goquery.Selection) []string {
	blocks := renderSelection(container.Find("div"))

	seen := make(map[uint64]struct{})
	var out []string
	for _, block := range blocks {
		if len([]rune(block)) < minBlockTextLen {
			continue
		}
		key := xxhash.Sum64String(strings.Join(strings.Fields(block), " "))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, block)
	}
	return out
}

// renderSelection renders each matched element to text, keeping non-empty
// results in document order.
func renderSelection(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := renderText(s); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// breakSentinel stands in for explicit line-break markers while whitespace
// is collapsed, so only <br> newlines survive into the rendered text.
const breakSentinel = "\x00"

// renderText converts one element to text: explicit line-break markers
// become newlines, all other content is concatenated with no separator,
// and whitespace runs (including source-markup newlines) collapse to
// single spaces.
func renderText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeNodeText(node, &b)
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	collapsed = strings.ReplaceAll(collapsed, breakSentinel, "\n")

	var lines []string
	for _, line := range strings.Split(collapsed, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func writeNodeText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && n.Data == "br" {
		b.WriteString(breakSentinel)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(c, b)
	}
}

// findDate scans the leading extracted lines for the first date token.
// The listing-supplied date takes precedence over this fallback.
func findDate(paragraphs []string) string {
	lines := 0
	for _, p := range paragraphs {
		for _, line := range strings.Split(p, "\n") {
			if lines >= dateScanLineLimit {
				return ""
			}
			lines++
			if m := newswatch.DatePattern.FindString(line); m != "" {
				return m
			}
		}
	}
	return ""
}
