// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the engine configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults, environment
// variables, or CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty"`

	// Providers
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key; empty disables AI escalation
	GeocoderURL string `json:"geocoder_url,omitempty"` // Override for the Census geocoder base URL
	FloodmapURL string `json:"floodmap_url,omitempty"` // Override for the FEMA NFHL base URL
	DisableAI   bool   `json:"disable_ai,omitempty"`   // Force rule-only classification

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // json or console
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		GeocoderURL: os.Getenv("GEOCODER_URL"),
		FloodmapURL: os.Getenv("FLOODMAP_URL"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: 'log_level' must be one of debug, info, warn, error")
	}
	switch c.LogFormat {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags override file values, which override environment
// values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GeocoderURL == "" {
		result.GeocoderURL = defaults.GeocoderURL
	}
	if result.FloodmapURL == "" {
		result.FloodmapURL = defaults.FloodmapURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields cannot distinguish unset from false, so flags always win

	return result
}
