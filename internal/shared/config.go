package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Playlist PlaylistConfig `toml:"playlist"`
	Log      LogConfig      `toml:"log"`
	Editor   EditorConfig   `toml:"editor"`
	Links    []LinkConfig   `toml:"links"`
}

// APIConfig contains the catalog API connection settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PlaylistConfig tunes bulk playlist length lookups.
type PlaylistConfig struct {
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// LogConfig controls log verbosity and the TUI log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// EditorConfig tunes the add-game form.
type EditorConfig struct {
	MaxHistory int `toml:"max_history"`
}

// LinkConfig is one bookmark shown by the links command.
type LinkConfig struct {
	Label string `toml:"label"`
	URL   string `toml:"url"`
}

// FindLink returns the bookmark whose label matches label, ignoring case and spacing.
func (c *Config) FindLink(label string) (LinkConfig, bool) {
	want := NormalizeName(label)
	for _, l := range c.Links {
		if NormalizeName(l.Label) == want {
			return l, true
		}
	}
	return LinkConfig{}, false
}

// Timeout returns the API timeout as a [time.Duration]; zero disables it.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate reports configuration that cannot work at all.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}
	if c.Playlist.Workers < 0 {
		return fmt.Errorf("%w: playlist.workers must not be negative", ErrInvalidConfig)
	}
	if c.Playlist.RateLimit < 0 {
		return fmt.Errorf("%w: playlist.rate_limit must not be negative", ErrInvalidConfig)
	}
	if c.Editor.MaxHistory < 0 {
		return fmt.Errorf("%w: editor.max_history must not be negative", ErrInvalidConfig)
	}
	for i, l := range c.Links {
		if strings.TrimSpace(l.Label) == "" || strings.TrimSpace(l.URL) == "" {
			return fmt.Errorf("%w: links[%d] needs both label and url", ErrInvalidConfig, i)
		}
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their defaults from the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
