package newswatch_test

import (
	"testing"

	"github.com/mkowalik/newswatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *newswatch.Config {
	return &newswatch.Config{
		StatePath:  "state.json",
		Recipients: map[string]string{"news": "https://hooks.example.com/abc"},
		Sources: []newswatch.Source{{
			Name:         "news",
			Recipient:    "news",
			ListingURLs:  []string{"https://example.com/news/1/"},
			LinkSelector: `a[href*="/news/detail/"]`,
			Categories:   []string{"OTHER", "NEWS", "EVENT", "MEDIA"},
		}},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing state path", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.StatePath = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, newswatch.EINVALID, newswatch.ErrorCode(err))
	})

	t.Run("no recipients", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Recipients = nil

		assert.Error(t, cfg.Validate())
	})

	t.Run("empty endpoint", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Recipients["news"] = ""

		assert.Error(t, cfg.Validate())
	})

	t.Run("source references unknown recipient", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Sources[0].Recipient = "nope"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, newswatch.ErrorMessage(err), "unknown recipient")
	})

	t.Run("source without listing URLs", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Sources[0].ListingURLs = nil

		assert.Error(t, cfg.Validate())
	})

	t.Run("source without link selector", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Sources[0].LinkSelector = ""

		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_Location(t *testing.T) {
	t.Parallel()

	t.Run("defaults to Asia/Tokyo", func(t *testing.T) {
		t.Parallel()

		loc, err := (&newswatch.Config{}).Location()
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", loc.String())
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := (&newswatch.Config{Timezone: "Mars/Olympus"}).Location()
		require.Error(t, err)
		assert.Equal(t, newswatch.EINVALID, newswatch.ErrorCode(err))
	})
}
