// Package config loads PawPal configuration from YAML with environment
// overrides. A missing config file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all PawPal configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Generative collaborators (Gemini)
	Assist AssistConfig `yaml:"assist"`

	// Mapping and geolocation (AMap)
	Geo GeoConfig `yaml:"geo"`

	// UI preferences
	UI UIConfig `yaml:"ui"`

	// Derived-record journal
	Journal JournalConfig `yaml:"journal"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AssistConfig configures the Gemini-backed collaborators.
type AssistConfig struct {
	APIKey     string `yaml:"api_key"`
	ChatModel  string `yaml:"chat_model"`
	ImageModel string `yaml:"image_model"`
	VideoModel string `yaml:"video_model"`
	EditModel  string `yaml:"edit_model"`

	// Spacing between polls of a long-running job.
	PollInterval string `yaml:"poll_interval"`
}

// GeoConfig configures the AMap client.
type GeoConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// UIConfig holds default UI preferences.
type UIConfig struct {
	Theme    string `yaml:"theme"`    // light, dark
	Language string `yaml:"language"` // en, zh
}

// JournalConfig configures local persistence.
type JournalConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures category logging.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "PawPal",
		Version: "1.0.0",

		Assist: AssistConfig{
			ChatModel:    "gemini-2.5-flash",
			ImageModel:   "imagen-4.0-generate-001",
			VideoModel:   "veo-3.0-generate-001",
			EditModel:    "gemini-2.5-flash-image",
			PollInterval: "5s",
		},

		Geo: GeoConfig{
			BaseURL: "https://restapi.amap.com/v3",
			Timeout: "15s",
		},

		UI: UIConfig{
			Theme:    "light",
			Language: "en",
		},

		Journal: JournalConfig{
			DatabasePath: "data/pawpal.db",
		},

		Logging: LoggingConfig{
			Level: "info",
			Dir:   "data",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "pawpal.yaml"
	}
	return filepath.Join(cwd, "pawpal.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Assist.APIKey = key
	}
	if key := os.Getenv("PAWPAL_API_KEY"); key != "" {
		c.Assist.APIKey = key
	}
	if key := os.Getenv("AMAP_API_KEY"); key != "" {
		c.Geo.APIKey = key
	}
	if path := os.Getenv("PAWPAL_DB"); path != "" {
		c.Journal.DatabasePath = path
	}
	if theme := os.Getenv("PAWPAL_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if lang := os.Getenv("PAWPAL_LANG"); lang != "" {
		c.UI.Language = lang
	}
}

// GetPollInterval returns the job poll interval as a duration.
func (c *Config) GetPollInterval() time.Duration {
	d, err := time.ParseDuration(c.Assist.PollInterval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// GetGeoTimeout returns the AMap request timeout as a duration.
func (c *Config) GetGeoTimeout() time.Duration {
	d, err := time.ParseDuration(c.Geo.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Assist.APIKey == "" {
		return fmt.Errorf("Gemini API key not configured (set GEMINI_API_KEY or assist.api_key)")
	}
	switch c.UI.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("invalid theme: %s (valid: light, dark)", c.UI.Theme)
	}
	switch c.UI.Language {
	case "en", "zh":
	default:
		return fmt.Errorf("invalid language: %s (valid: en, zh)", c.UI.Language)
	}
	return nil
}
