package newswatch

import (
	"strings"
	"unicode"
)

// noiseLabels are short boilerplate strings that appear above and below
// article bodies on the source site (share buttons, navigation, and the
// section heading itself).
var noiseLabels = []string{"NEWS", "SHARE", "BACK", "SUPPORT"}

// NormalizeBody turns extracted paragraphs into the final outgoing body:
// it strips the leading metadata-echo block, truncates at the first
// trailing-boilerplate marker, and appends a "{category} / {date}" footer
// when not already present. Paragraphs are rejoined with a blank line.
func NormalizeBody(paragraphs []string, title, category, date string, categories, cutMarkers []string) string {
	rest := StripLeadingParagraphs(paragraphs, title, category, date, categories)

	body := strings.Join(rest, "\n\n")
	body = CutAtFirstMarker(body, cutMarkers)

	footer := Footer(category, date)
	if !strings.Contains(body, footer) {
		body = strings.TrimRight(body, " \n")
		if body == "" {
			return footer
		}
		body += "\n\n" + footer
	}
	return body
}

// StripLeadingParagraphs removes the contiguous leading run of paragraphs
// that echo the item's title, category, or date, or that match the category
// vocabulary, a bare date token, or a known boilerplate label. Comparison is
// whitespace-insensitive. Interior paragraphs are never touched, so the
// operation is idempotent.
func StripLeadingParagraphs(paragraphs []string, title, category, date string, categories []string) []string {
	t := squash(title)
	c := squash(category)
	d := squash(date)

	i := 0
	for i < len(paragraphs) {
		raw := strings.TrimSpace(paragraphs[i])
		head := squash(raw)

		switch {
		case head == "":
		case head == t || head == c || head == d:
		case DatePattern.FindString(raw) == raw:
		case containsString(categories, raw):
		case containsString(noiseLabels, head):
		default:
			return paragraphs[i:]
		}
		i++
	}
	return nil
}

// CutAtFirstMarker truncates text at the earliest occurrence of any marker,
// discarding the marker and everything after it. Trailing whitespace on the
// kept portion is trimmed.
func CutAtFirstMarker(text string, markers []string) string {
	cut := -1
	for _, m := range markers {
		if m == "" {
			continue
		}
		if idx := strings.Index(text, m); idx != -1 && (cut == -1 || idx < cut) {
			cut = idx
		}
	}
	if cut == -1 {
		return strings.TrimRight(text, " \n")
	}
	return strings.TrimRight(text[:cut], " \n")
}

// Footer is the attribution line appended to every outgoing body.
func Footer(category, date string) string {
	return category + " / " + date
}

// squash removes all whitespace, including ideographic spaces, for
// whitespace-insensitive comparison of heading echoes.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
