// Package config holds the nichefeed runtime configuration: where the
// vocabulary, consistency tables, templates, and candidate population live,
// plus assembly and logging settings. Configuration loads once at startup;
// environment variables override the file for deployment knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full nichefeed configuration.
type Config struct {
	// Vocabulary is the path to a YAML vocabulary file; empty means the
	// built-in vocabulary.
	Vocabulary string `yaml:"vocabulary"`

	// Consistency is the path to the operator-supplied tension-rule table;
	// empty means the built-in default table.
	Consistency string `yaml:"consistency"`

	// Templates is the directory generated template documents land in.
	Templates string `yaml:"templates"`

	// Population points the CLI at the candidate population: a .db file is
	// opened as SQLite, anything else is read as a YAML population file.
	Population string `yaml:"population"`

	Assembly AssemblyConfig `yaml:"assembly"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AssemblyConfig bounds evaluation fan-out and selects the display language
// for assembled topics.
type AssemblyConfig struct {
	Concurrency int    `yaml:"concurrency"`
	Language    string `yaml:"language"` // zh or en
}

// LoggingConfig controls the zap logger the CLI builds.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Templates:  "templates",
		Population: "candidates.db",
		Assembly: AssemblyConfig{
			Concurrency: 8,
			Language:    "en",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a config file, falling back to defaults when the file does not
// exist, and applies environment overrides either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults stand.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to disk, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NICHEFEED_POPULATION"); v != "" {
		c.Population = v
	}
	if v := os.Getenv("NICHEFEED_LANG"); v != "" {
		c.Assembly.Language = v
	}
	if v := os.Getenv("NICHEFEED_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Assembly.Concurrency = n
		}
	}
	if v := os.Getenv("NICHEFEED_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) validate() error {
	if c.Assembly.Language != "zh" && c.Assembly.Language != "en" {
		return fmt.Errorf("config: language must be zh or en, got %q", c.Assembly.Language)
	}
	if c.Assembly.Concurrency < 1 {
		return fmt.Errorf("config: concurrency must be positive, got %d", c.Assembly.Concurrency)
	}
	return nil
}
