package newswatch

import "time"

// DefaultTimezone is used for target-date computation when the config does
// not specify one. The monitored site publishes dates in Japan time.
const DefaultTimezone = "Asia/Tokyo"

// Config is the process configuration, loaded once at start and passed
// explicitly to the components that need it. It is never a singleton.
type Config struct {
	// Timezone is the IANA timezone name used to compute "today" for the
	// target-date filter. Defaults to DefaultTimezone.
	Timezone string `yaml:"timezone"`

	// StatePath is the notification state file location.
	StatePath string `yaml:"state_path"`

	// Recipients maps recipient keys to webhook endpoints. A value of the
	// form "env:NAME" is resolved from the environment at load time so
	// endpoints can stay out of the file.
	Recipients map[string]string `yaml:"recipients"`

	// Sources are the monitored listings.
	Sources []Source `yaml:"sources"`
}

// Source describes one monitored listing and how to read it.
// Selectors and vocabulary are configuration data, not code.
type Source struct {
	// Name identifies the source in logs and CLI output.
	Name string `yaml:"name"`

	// Recipient is the key into Config.Recipients this source delivers to.
	Recipient string `yaml:"recipient"`

	// ListingURLs are the pages of one logical listing, fetched in order.
	ListingURLs []string `yaml:"listing_urls"`

	// LinkSelector matches detail-page anchors on the listing,
	// e.g. `a[href*="/news/detail/"]`.
	LinkSelector string `yaml:"link_selector"`

	// ContentSelector optionally names the primary content region of a
	// detail page. When empty or unmatched, extraction falls back to
	// main, then article, then body.
	ContentSelector string `yaml:"content_selector"`

	// Categories is the site's category vocabulary (e.g. OTHER, NEWS,
	// EVENT, MEDIA), stripped when echoed above the body.
	Categories []string `yaml:"categories"`

	// CutMarkers are trailing-boilerplate markers; the body is truncated
	// at the first occurrence of any of them.
	CutMarkers []string `yaml:"cut_markers"`
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return Errorf(EINVALID, "state path required")
	}
	if len(c.Recipients) == 0 {
		return Errorf(EINVALID, "at least one recipient required")
	}
	for key, endpoint := range c.Recipients {
		if endpoint == "" {
			return Errorf(EINVALID, "recipient %q has no endpoint", key)
		}
	}
	if len(c.Sources) == 0 {
		return Errorf(EINVALID, "at least one source required")
	}
	for _, s := range c.Sources {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := c.Recipients[s.Recipient]; !ok {
			return Errorf(EINVALID, "source %q references unknown recipient %q", s.Name, s.Recipient)
		}
	}
	return nil
}

// Validate returns an error if the source definition is unusable.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.Recipient == "" {
		return Errorf(EINVALID, "source %q recipient required", s.Name)
	}
	if len(s.ListingURLs) == 0 {
		return Errorf(EINVALID, "source %q needs at least one listing URL", s.Name)
	}
	if s.LinkSelector == "" {
		return Errorf(EINVALID, "source %q link selector required", s.Name)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid timezone %q: %v", name, err)
	}
	return loc, nil
}
