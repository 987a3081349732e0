// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/theme-sync/internal/model"
)

// Default configuration values.
const (
	AppName           = "theme-sync"
	DefaultConfigFile = "default-config.yml"
)

// Preference source names.
const (
	SourceGSettings = "gsettings"
	SourcePortal    = "portal"
)

// Config represents the theme-sync configuration.
type Config struct {
	Source string      `yaml:"source,omitempty" toml:"source,omitempty" validate:"omitempty,oneof=gsettings portal"`
	Apps   []AppConfig `yaml:"apps" toml:"apps" validate:"dive"`
}

// AppConfig describes how to switch a single application's theme.
type AppConfig struct {
	Name       string `yaml:"name" toml:"name" validate:"required"`
	Path       string `yaml:"path" toml:"path" validate:"required"`               // Relative to the home directory
	LightToken string `yaml:"light_token" toml:"light_token" validate:"required"` // Present in the file when light
	DarkToken  string `yaml:"dark_token" toml:"dark_token" validate:"required"`   // Present in the file when dark
	ReloadCmd  string `yaml:"reload_cmd,omitempty" toml:"reload_cmd,omitempty"`   // Run through bash after a change
}

// HasReload reports whether a reload command is configured.
func (a AppConfig) HasReload() bool {
	return strings.TrimSpace(a.ReloadCmd) != ""
}

// DefaultConfig returns an empty configuration.
func DefaultConfig() *Config {
	return &Config{
		Apps: []AppConfig{},
	}
}

// ConfigPath returns the default config file path,
// ~/.config/theme-sync/default-config.yml under the resolved home directory.
func ConfigPath(lookup LookupFunc) (string, error) {
	home, err := HomeDir(lookup)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, DefaultConfigFile), nil
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// A missing file is created with the default configuration.
func LoadConfig(path string, lookup LookupFunc) (*Config, error) {
	if path == "" {
		var err error
		path, err = ConfigPath(lookup)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			if err := cfg.Save(path); err != nil {
				return nil, model.NewError(model.KindConfigLoad, "create default config "+path, err)
			}
			return cfg, nil
		}
		return nil, model.NewError(model.KindConfigLoad, "read config "+path, err)
	}

	cfg, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, model.NewError(model.KindConfigLoad, "load config "+path, err)
	}

	return cfg, nil
}

// Format is a configuration file encoding.
type Format int

// Supported formats.
const (
	FormatYAML Format = iota
	FormatTOML
)

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes and validates configuration data.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := DefaultConfig()

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path as YAML.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if formatFor(path) == FormatTOML {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
