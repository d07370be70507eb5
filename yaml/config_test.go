package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkowalik/newswatch"
	nwyaml "github.com/mkowalik/newswatch/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configFixture = `
timezone: Asia/Tokyo
state_path: state.json
recipients:
  news: https://hooks.example.com/abc
  blog: env:TEST_BLOG_WEBHOOK
sources:
  - name: news
    recipient: news
    listing_urls:
      - https://example.com/news/1/
    link_selector: a[href*="/news/detail/"]
    content_selector: div.news-detail
    categories: [OTHER, NEWS, EVENT, MEDIA]
    cut_markers: ["Member contents"]
  - name: blog
    recipient: blog
    listing_urls:
      - https://example.com/blog/list/1/0/
    link_selector: a[href*="/blog/detail/"]
`

func TestParseConfig(t *testing.T) {
	t.Setenv("TEST_BLOG_WEBHOOK", "https://hooks.example.com/blog")

	cfg, err := nwyaml.ParseConfig([]byte(configFixture))
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, "state.json", cfg.StatePath)
	assert.Equal(t, "https://hooks.example.com/abc", cfg.Recipients["news"])
	assert.Equal(t, "https://hooks.example.com/blog", cfg.Recipients["blog"])

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, `a[href*="/news/detail/"]`, cfg.Sources[0].LinkSelector)
	assert.Equal(t, "div.news-detail", cfg.Sources[0].ContentSelector)
	assert.Equal(t, []string{"OTHER", "NEWS", "EVENT", "MEDIA"}, cfg.Sources[0].Categories)
	assert.Equal(t, []string{"Member contents"}, cfg.Sources[0].CutMarkers)
}

func TestParseConfig_MissingEnvVariable(t *testing.T) {
	t.Setenv("TEST_BLOG_WEBHOOK", "")

	_, err := nwyaml.ParseConfig([]byte(configFixture))
	require.Error(t, err)
	assert.Equal(t, newswatch.EINVALID, newswatch.ErrorCode(err))
	assert.Contains(t, newswatch.ErrorMessage(err), "TEST_BLOG_WEBHOOK")
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := nwyaml.ParseConfig([]byte("recipients: ["))
	require.Error(t, err)
	assert.Equal(t, newswatch.EINVALID, newswatch.ErrorCode(err))
}

func TestParseConfig_FailsValidation(t *testing.T) {
	t.Parallel()

	_, err := nwyaml.ParseConfig([]byte("state_path: state.json"))
	require.Error(t, err)
	assert.Equal(t, newswatch.EINVALID, newswatch.ErrorCode(err))
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := nwyaml.LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.Equal(t, newswatch.ENOTFOUND, newswatch.ErrorCode(err))
	})

	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(configFixture), 0o644))
		t.Setenv("TEST_BLOG_WEBHOOK", "https://hooks.example.com/blog")

		cfg, err := nwyaml.LoadConfig(path)
		require.NoError(t, err)
		assert.Len(t, cfg.Sources, 2)
	})
}
