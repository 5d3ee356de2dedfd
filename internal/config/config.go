// Package config provides persistent user preferences for solatku.
//
// Preferences are stored as JSON at ~/.config/solatku/config.json
// (XDG-compliant). The merge priority is: CLI flags > environment >
// config file > defaults. Environment values may come from a .env file
// loaded through godotenv.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

const (
	configDirName  = "solatku"
	configFileName = "config.json"

	// Environment variable names, optionally supplied via a .env file.
	EnvAPIURL   = "SOLATKU_API_URL"
	EnvLogLevel = "SOLATKU_LOG_LEVEL"
	EnvLogPath  = "SOLATKU_LOG_PATH"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"zone", "district", "theme", "time_format", "api_url", "cache_dir", "log_path",
}

// zoneCodePattern matches JAKIM zone codes like "WLY01" or "SGR03".
var zoneCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{2}$`)

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	Zone       string `json:"zone,omitempty"`
	District   string `json:"district,omitempty"`
	Theme      string `json:"theme,omitempty"`       // "day" or "night"
	TimeFormat string `json:"time_format,omitempty"` // "12h" or "24h"
	APIURL     string `json:"api_url,omitempty"`
	CacheDir   string `json:"cache_dir,omitempty"`
	LogPath    string `json:"log_path,omitempty"`
}

// Defaults returns a Config with all default values applied.
// Kuala Lumpur is the out-of-the-box zone, matching a fresh install.
func Defaults() Config {
	return Config{
		Zone:       "WLY01",
		District:   "Kuala Lumpur",
		Theme:      "day",
		TimeFormat: "12h",
	}
}

// LoadEnv loads a .env file from the working directory when present
// (best-effort) and applies environment overrides onto c.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvLogPath); v != "" {
		c.LogPath = v
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and the value format.
func (c *Config) Set(key, value string) error {
	switch key {
	case "zone":
		code := strings.ToUpper(strings.TrimSpace(value))
		if !zoneCodePattern.MatchString(code) {
			return fmt.Errorf("invalid zone %q: must be a JAKIM code like WLY01", value)
		}
		c.Zone = code
	case "district":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("district cannot be empty")
		}
		c.District = strings.TrimSpace(value)
	case "theme":
		if value != "day" && value != "night" {
			return fmt.Errorf("invalid theme %q: must be \"day\" or \"night\"", value)
		}
		c.Theme = value
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "api_url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid api_url %q: must start with http:// or https://", value)
		}
		c.APIURL = strings.TrimRight(value, "/")
	case "cache_dir":
		c.CacheDir = value
	case "log_path":
		c.LogPath = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "zone":
		return c.Zone, nil
	case "district":
		return c.District, nil
	case "theme":
		return c.Theme, nil
	case "time_format":
		return c.TimeFormat, nil
	case "api_url":
		return c.APIURL, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "log_path":
		return c.LogPath, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Unset clears a config key back to its unset state.
func (c *Config) Unset(key string) error {
	switch key {
	case "zone":
		c.Zone = ""
	case "district":
		c.District = ""
	case "theme":
		c.Theme = ""
	case "time_format":
		c.TimeFormat = ""
	case "api_url":
		c.APIURL = ""
	case "cache_dir":
		c.CacheDir = ""
	case "log_path":
		c.LogPath = ""
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// ZoneOrDefault returns the configured zone, falling back to the default.
func (c *Config) ZoneOrDefault() string {
	if c.Zone != "" {
		return c.Zone
	}
	return Defaults().Zone
}

// DistrictOrDefault returns the configured district, falling back to the default.
func (c *Config) DistrictOrDefault() string {
	if c.District != "" {
		return c.District
	}
	return Defaults().District
}

// NightTheme reports whether the night theme is active.
func (c *Config) NightTheme() bool {
	return c.Theme == "night"
}
