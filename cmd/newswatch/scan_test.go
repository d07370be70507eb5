package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mkowalik/newswatch"
	main "github.com/mkowalik/newswatch/cmd/newswatch"
	"github.com/mkowalik/newswatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *newswatch.Config {
	return &newswatch.Config{
		StatePath:  "state.json",
		Recipients: map[string]string{"news": "https://hooks.example.com/abc"},
		Sources: []newswatch.Source{{
			Name:         "news",
			Recipient:    "news",
			ListingURLs:  []string{"https://example.com/news/1/"},
			LinkSelector: `a[href*="/news/detail/"]`,
		}},
	}
}

func TestScanCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists discovered items per source", func(t *testing.T) {
		t.Parallel()

		scanner := &mock.Scanner{
			ScanFn: func(_ context.Context, _ newswatch.Source) ([]newswatch.Item, error) {
				return []newswatch.Item{
					{URL: "https://example.com/news/detail/1", Date: "2026.01.05", Category: "NEWS", Title: "Launch"},
					{URL: "https://example.com/news/detail/2", Date: "2026.01.04", Category: "EVENT", Title: "Meetup"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Config:  testConfig(),
			Scanner: scanner,
		}

		err := (&main.ScanCmd{}).Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "news: 2 items")
		assert.Contains(t, output, "2026.01.05  NEWS  Launch  https://example.com/news/detail/1")
		assert.Contains(t, output, "2026.01.04  EVENT  Meetup  https://example.com/news/detail/2")
		assert.Empty(t, stderr.String())
	})

	t.Run("surfaces scan failures", func(t *testing.T) {
		t.Parallel()

		scanner := &mock.Scanner{
			ScanFn: func(_ context.Context, _ newswatch.Source) ([]newswatch.Item, error) {
				return nil, newswatch.Errorf(newswatch.EUNAVAILABLE, "listing down")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Config:  testConfig(),
			Scanner: scanner,
		}

		err := (&main.ScanCmd{}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "listing down")
	})
}
