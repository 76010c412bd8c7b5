package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"standings/internal/syndicate"
)

// Config holds all standings configuration.
type Config struct {
	// Log file to follow. Empty means the platform default EE.log location.
	LogPath string `yaml:"log_path" env:"STANDINGS_LOG_PATH"`

	// Quiet period after a change notification before the file is read.
	Debounce string `yaml:"debounce" env:"STANDINGS_DEBOUNCE"`

	// Optional forced poll period for filesystems with unreliable change
	// notifications (network shares, some Wine prefixes). Empty disables it.
	PollInterval string `yaml:"poll_interval" env:"STANDINGS_POLL_INTERVAL"`

	// Replay the whole file on start instead of only new lines.
	FromStart bool `yaml:"from_start" env:"STANDINGS_FROM_START"`

	// Number of applied standing changes kept for display.
	HistoryLimit int `yaml:"history_limit" env:"STANDINGS_HISTORY_LIMIT"`

	// Starting standings by faction key (steel, arbiters, suda, perrin, veil, loka).
	Standings map[string]float64 `yaml:"standings,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:     "100ms",
		HistoryLimit: 50,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".standings", "config.yaml")
	}
	return filepath.Join(dir, "standings", "config.yaml")
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from a YAML file, then applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides replaces fields whose STANDINGS_* variable is set.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if d, err := time.ParseDuration(c.Debounce); err != nil || d <= 0 {
		return fmt.Errorf("invalid debounce %q: must be a positive duration", c.Debounce)
	}
	if c.PollInterval != "" {
		if d, err := time.ParseDuration(c.PollInterval); err != nil || d < 0 {
			return fmt.Errorf("invalid poll_interval %q", c.PollInterval)
		}
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("invalid history_limit %d: must not be negative", c.HistoryLimit)
	}
	if _, err := c.InitialStandings(); err != nil {
		return fmt.Errorf("invalid standings: %w", err)
	}
	return c.Logging.Validate()
}

// GetDebounce returns the debounce window as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil || d <= 0 {
		return 100 * time.Millisecond
	}
	return d
}

// GetPollInterval returns the forced poll period, or zero when disabled.
func (c *Config) GetPollInterval() time.Duration {
	if c.PollInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// InitialStandings converts the standings map into a full Standings value.
func (c *Config) InitialStandings() (syndicate.Standings, error) {
	return syndicate.StandingsFromMap(c.Standings)
}
