// Package config provides persistent configuration for the salat CLI.
//
// Configuration is stored as JSON at ~/.config/salat/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/times"
)

const (
	configDirName       = "salat"
	configFileName      = "config.json"
	adjustmentsFileName = "adjustments.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude",
	"method", "madhab",
	"time_format",
	"prayers",
	"cache_dir",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Method     string  `json:"method,omitempty"`      // method identifier, e.g. "mwl"
	Madhab     string  `json:"madhab,omitempty"`      // "shafi" or "hanafi"
	TimeFormat string  `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers    string  `json:"prayers,omitempty"`     // comma-separated list
	CacheDir   string  `json:"cache_dir,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     method.Default.String(),
		Madhab:     method.Shafi.String(),
		TimeFormat: "24h",
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

// AdjustmentsPath returns the full path to the persisted adjustments file,
// which lives alongside the config file.
func AdjustmentsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, adjustmentsFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
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
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "method":
		m, err := method.Parse(value)
		if err != nil {
			return err
		}
		c.Method = m.String()
	case "madhab":
		md, err := method.ParseMadhab(value)
		if err != nil {
			return err
		}
		c.Madhab = md.String()
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		// Validate each prayer name.
		names := strings.Split(value, ",")
		for _, n := range names {
			n = strings.TrimSpace(n)
			if !times.IsValidName(n) {
				return fmt.Errorf("invalid prayer name %q in prayers list", n)
			}
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		if c.Latitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Longitude, 'f', -1, 64), nil
	case "method":
		return c.Method, nil
	case "madhab":
		return c.Madhab, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// MethodOrDefault returns the configured method, falling back to the
// default convention when unset.
func (c *Config) MethodOrDefault() method.Method {
	if c.Method == "" {
		return method.Default
	}
	m, err := method.Parse(c.Method)
	if err != nil {
		return method.Default
	}
	return m
}

// MadhabOrDefault returns the configured madhab, falling back to Shafi.
func (c *Config) MadhabOrDefault() method.Madhab {
	if c.Madhab == "" {
		return method.Shafi
	}
	md, err := method.ParseMadhab(c.Madhab)
	if err != nil {
		return method.Shafi
	}
	return md
}
