// Package yaml loads the process configuration from a YAML file.
package yaml

import (
	"os"
	"strings"

	"github.com/mkowalik/newswatch"
	"gopkg.in/yaml.v3"
)

// envPrefix marks recipient endpoint values that are resolved from the
// environment, e.g. "env:NEWS_WEBHOOK_URL". Keeps webhook URLs, which embed
// credentials, out of the config file.
const envPrefix = "env:"

// LoadConfig reads, resolves, and validates the configuration at path.
func LoadConfig(path string) (*newswatch.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newswatch.Errorf(newswatch.ENOTFOUND, "config file %s: %v", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates raw YAML configuration bytes.
func ParseConfig(data []byte) (*newswatch.Config, error) {
	var cfg newswatch.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newswatch.Errorf(newswatch.EINVALID, "invalid config: %v", err)
	}

	for key, endpoint := range cfg.Recipients {
		name, ok := strings.CutPrefix(endpoint, envPrefix)
		if !ok {
			continue
		}
		resolved := os.Getenv(name)
		if resolved == "" {
			return nil, newswatch.Errorf(newswatch.EINVALID,
				"recipient %q: environment variable %s not set", key, name)
		}
		cfg.Recipients[key] = resolved
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
