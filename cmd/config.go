package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the persisted defaults a .trackastrc.yaml file can set,
// so repeated invocations against the same project don't need every
// flag spelled out on the command line.
type Config struct {
	Root        string   `yaml:"root"`
	Language    string   `yaml:"language"`
	Format      string   `yaml:"format"`
	NoDiscover  bool     `yaml:"no_discover"`
	EntryPoints []string `yaml:"entry_points"`
}

// LoadConfig reads and parses path. A missing file is not an error —
// it returns a zero Config so callers can fall through to flag
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults overwrites any flag value still at its zero value (for
// --format, its default "json") with the corresponding config setting,
// giving the config file lower precedence than an explicitly passed
// flag. An explicit "--format json" is still overridden by a config
// format.
func (c *Config) ApplyDefaults() {
	if analyzeRoot == "" {
		analyzeRoot = c.Root
	}
	if analyzeLanguage == "" {
		analyzeLanguage = c.Language
	}
	if analyzeFormat == "json" && c.Format != "" {
		analyzeFormat = c.Format
	}
	if !analyzeNoDiscover {
		analyzeNoDiscover = c.NoDiscover
	}
	if len(analyzeEntryPoints) == 0 {
		analyzeEntryPoints = c.EntryPoints
	}
}
