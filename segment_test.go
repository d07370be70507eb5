package newswatch_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mkowalik/newswatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBody(t *testing.T) {
	t.Parallel()

	t.Run("body within limit returns no overflow", func(t *testing.T) {
		t.Parallel()

		head, overflow := newswatch.SplitBody("Hello world.\n\nNEWS / 2026.01.01", 2000)

		assert.Equal(t, "Hello world.\n\nNEWS / 2026.01.01", head)
		assert.Empty(t, overflow)
	})

	t.Run("splits at paragraph boundary", func(t *testing.T) {
		t.Parallel()

		a := strings.Repeat("a", 50)
		b := strings.Repeat("b", 50)
		c := strings.Repeat("c", 50)
		body := a + "\n\n" + b + "\n\n" + c

		head, overflow := newswatch.SplitBody(body, 110)

		assert.Equal(t, a+"\n\n"+b, head)
		assert.Equal(t, c, overflow)
	})

	t.Run("oversized first paragraph is hard cut", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("x", 5000)

		head, overflow := newswatch.SplitBody(body, 2000)

		assert.Equal(t, body[:2000], head)
		assert.Equal(t, body[2000:], overflow)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("あ", 30)

		head, overflow := newswatch.SplitBody(body, 10)

		assert.Equal(t, 10, utf8.RuneCountInString(head))
		assert.Equal(t, 20, utf8.RuneCountInString(overflow))
	})

	t.Run("reconstructs body at paragraph boundaries", func(t *testing.T) {
		t.Parallel()

		body := "First paragraph.\n\nSecond paragraph is a bit longer.\n\nThird."

		head, overflow := newswatch.SplitBody(body, 40)

		require.NotEmpty(t, overflow)
		assert.Equal(t, body, head+"\n\n"+overflow)
	})
}

func TestChunkOverflow(t *testing.T) {
	t.Parallel()

	t.Run("empty overflow yields no chunks", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newswatch.ChunkOverflow("", 2000))
	})

	t.Run("marker prefixes first chunk only", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("y", 3000)

		chunks := newswatch.ChunkOverflow(text, 2000)

		require.GreaterOrEqual(t, len(chunks), 2)
		assert.True(t, strings.HasPrefix(chunks[0], newswatch.ContinuedMarker+"\n"))
		for _, chunk := range chunks[1:] {
			assert.False(t, strings.HasPrefix(chunk, newswatch.ContinuedMarker))
		}
	})

	t.Run("every chunk within limit", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("paragraph text here.\n\n", 400)

		for _, chunk := range newswatch.ChunkOverflow(text, 2000) {
			assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 2000)
		}
	})
}

func TestBuildSegments(t *testing.T) {
	t.Parallel()

	t.Run("short body yields single primary segment", func(t *testing.T) {
		t.Parallel()

		segments := newswatch.BuildSegments("Title", "https://example.com/news/1", "Hello world.\n\nNEWS / 2026.01.01")

		require.Len(t, segments, 1)
		assert.Equal(t, newswatch.SegmentPrimary, segments[0].Kind)
		assert.Equal(t, "Title", segments[0].Title)
		assert.Equal(t, "https://example.com/news/1", segments[0].URL)
		assert.Equal(t, "Hello world.\n\nNEWS / 2026.01.01", segments[0].Text)
	})

	t.Run("oversized single paragraph produces overflow segments", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("z", 9000)

		segments := newswatch.BuildSegments("Title", "https://example.com/news/1", body)

		require.GreaterOrEqual(t, len(segments), 3)
		assert.Equal(t, body[:newswatch.EmbedDescLimit], segments[0].Text)
		for _, seg := range segments[1:] {
			assert.Equal(t, newswatch.SegmentOverflow, seg.Kind)
			assert.LessOrEqual(t, utf8.RuneCountInString(seg.Text), newswatch.ContentLimit)
		}
	})

	t.Run("segments reconstruct the body", func(t *testing.T) {
		t.Parallel()

		var paragraphs []string
		for i := 0; i < 100; i++ {
			paragraphs = append(paragraphs, strings.Repeat("w", 90))
		}
		body := strings.Join(paragraphs, "\n\n")

		segments := newswatch.BuildSegments("Title", "https://example.com/news/1", body)
		require.Greater(t, len(segments), 1)

		var parts []string
		for _, seg := range segments {
			parts = append(parts, strings.TrimPrefix(seg.Text, newswatch.ContinuedMarker+"\n"))
		}

		assert.Equal(t, body, strings.Join(parts, "\n\n"))
	})

	t.Run("title truncated to embed limit", func(t *testing.T) {
		t.Parallel()

		segments := newswatch.BuildSegments(strings.Repeat("t", 300), "https://example.com", "body")

		assert.Equal(t, newswatch.EmbedTitleLimit, utf8.RuneCountInString(segments[0].Title))
	})

	t.Run("every segment within its applicable limit", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("long paragraph of text. ", 1000)

		for i, seg := range newswatch.BuildSegments("Title", "https://example.com", body) {
			limit := newswatch.ContentLimit
			if i == 0 {
				limit = newswatch.EmbedDescHardLimit
			}
			assert.LessOrEqual(t, utf8.RuneCountInString(seg.Text), limit)
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("short string unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "short", newswatch.Truncate("short", 10))
	})

	t.Run("long string gets ellipsis", func(t *testing.T) {
		t.Parallel()

		got := newswatch.Truncate(strings.Repeat("a", 20), 10)

		assert.Equal(t, strings.Repeat("a", 9)+"…", got)
		assert.Equal(t, 10, utf8.RuneCountInString(got))
	})

	t.Run("multibyte characters counted as one", func(t *testing.T) {
		t.Parallel()

		got := newswatch.Truncate(strings.Repeat("あ", 20), 10)

		assert.Equal(t, 10, utf8.RuneCountInString(got))
	})
}
