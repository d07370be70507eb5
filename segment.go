package newswatch

import (
	"strings"
	"unicode/utf8"
)

// Transport size regimes. The primary message is a rich embed; overflow
// continues in plain content messages.
const (
	// EmbedTitleLimit is the transport's embed title hard limit.
	EmbedTitleLimit = 256

	// EmbedDescLimit is the working budget for embed descriptions, kept
	// under the transport's 4096 hard limit for safety margin.
	EmbedDescLimit = 4000

	// EmbedDescHardLimit is the transport's absolute embed description limit.
	EmbedDescHardLimit = 4096

	// ContentLimit is the transport's plain content hard limit.
	ContentLimit = 2000
)

// ContinuedMarker prefixes the first overflow segment of an item.
const ContinuedMarker = "(continued)"

// SegmentKind distinguishes the two outgoing message shapes.
type SegmentKind int

const (
	// SegmentPrimary is the rich message carrying title, link, and the
	// leading part of the body.
	SegmentPrimary SegmentKind = iota

	// SegmentOverflow is a plain continuation message.
	SegmentOverflow
)

// Segment is one bounded unit of outgoing content sized to fit a transport
// limit. The segments of one item, concatenated at paragraph boundaries,
// reconstruct the normalized body (modulo the continuation marker and any
// forced hard cut).
type Segment struct {
	Kind  SegmentKind
	Title string // primary only
	URL   string // primary only
	Text  string
}

// BuildSegments fits a normalized body plus its furniture into the
// transport's size regimes. The footer is already embedded in the body;
// title and link travel as embed fields, so only the continuation marker
// needs reserved space (inside ChunkOverflow).
func BuildSegments(title, url, body string) []Segment {
	head, overflow := SplitBody(body, EmbedDescLimit)

	segments := []Segment{{
		Kind:  SegmentPrimary,
		Title: Truncate(title, EmbedTitleLimit),
		URL:   url,
		Text:  Truncate(head, EmbedDescHardLimit),
	}}

	for _, chunk := range ChunkOverflow(overflow, ContentLimit) {
		segments = append(segments, Segment{
			Kind: SegmentOverflow,
			Text: Truncate(chunk, ContentLimit),
		})
	}
	return segments
}

// SplitBody splits a body into a head that fits within limit and the
// remaining overflow. Whole paragraphs (blank-line separated) are
// accumulated greedily; only when the very first paragraph alone exceeds
// the limit is a hard character cut made at the limit boundary. Limits
// count characters, not bytes.
func SplitBody(body string, limit int) (head, overflow string) {
	if utf8.RuneCountInString(body) <= limit {
		return body, ""
	}

	paragraphs := strings.Split(body, "\n\n")

	n := 0
	i := 0
	for ; i < len(paragraphs); i++ {
		length := utf8.RuneCountInString(paragraphs[i])
		if i > 0 {
			length += 2 // blank-line separator
		}
		if n+length > limit {
			break
		}
		n += length
	}

	if i == 0 {
		// The first paragraph alone exceeds the budget; hard cut.
		runes := []rune(body)
		return string(runes[:limit]), strings.TrimLeft(string(runes[limit:]), "\n")
	}

	head = strings.Join(paragraphs[:i], "\n\n")
	overflow = strings.TrimLeft(strings.Join(paragraphs[i:], "\n\n"), "\n")
	return head, overflow
}

// ChunkOverflow splits overflow text into plain segments of at most limit
// characters each, preferring paragraph boundaries. The continuation marker
// is prefixed to the first chunk only, with its length reserved from that
// chunk's budget.
func ChunkOverflow(text string, limit int) []string {
	text = strings.TrimLeft(text, "\n")
	if text == "" {
		return nil
	}

	prefix := ContinuedMarker + "\n"

	var chunks []string
	first := true
	for text != "" {
		budget := limit
		if first {
			budget -= utf8.RuneCountInString(prefix)
		}

		head, rest := SplitBody(text, budget)
		if strings.TrimSpace(head) == "" && rest == "" {
			break
		}
		if first {
			head = prefix + head
		}
		chunks = append(chunks, head)

		text = strings.TrimLeft(rest, "\n")
		first = false
	}
	return chunks
}

// Truncate caps s at limit characters, replacing the final character with an
// ellipsis when a cut is made. This is the hard-limit backstop, never the
// primary truncation mechanism.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
