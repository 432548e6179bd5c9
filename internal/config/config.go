// Package config loads lumac's optional project file, lumac.yaml, via
// goccy/go-yaml. Every field starts from the value Default gives it, so a
// missing or partial file is never an error on its own.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is lumac's project-level configuration. Command-line flags always
// take precedence over a loaded Config; see cmd/lumac.
type Config struct {
	// CacheDir is where compiled WASM binaries are cached between runs.
	// Empty disables the cache.
	CacheDir string `yaml:"cache_dir"`

	// Verbose is loaded from the file, but the commands in cmd/lumac do not
	// read it: their verbose output is turned on only by the -v flag.
	Verbose bool `yaml:"verbose"`

	// Color is loaded from the file, but the commands in cmd/lumac do not
	// read it: `lex` always colors its error output and the other commands
	// never do.
	Color bool `yaml:"color"`
}

// Default returns the configuration lumac uses when no lumac.yaml is found.
func Default() *Config {
	return &Config{
		CacheDir: ".lumac_cache",
		Color:    true,
	}
}

// Load reads and parses path. A missing file is not an error: Load returns
// Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
