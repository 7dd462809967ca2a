// Package config handles global bcf configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global bcf configuration.
type Config struct {
	// DefaultFile is the archive opened when no -f/--file flag is given.
	DefaultFile string `toml:"default_file"`

	// Author is the e-mail address stamped on created and modified
	// topics and comments when no --author flag is given.
	Author string `toml:"author"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255") or
	// hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks. Example values: "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// ArchivePath resolves the archive to operate on: an explicit path wins,
// otherwise the configured default file.
func (c *Config) ArchivePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if c.DefaultFile != "" {
		return c.DefaultFile, nil
	}
	return "", fmt.Errorf("no archive given: pass -f/--file or set default_file in %s", DefaultPath())
}

// ResolveAuthor resolves the author identity: an explicit flag value wins,
// otherwise the configured author.
func (c *Config) ResolveAuthor(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if c.Author != "" {
		return c.Author, nil
	}
	return "", fmt.Errorf("no author given: pass --author or set author in %s", DefaultPath())
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/bcf/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "bcf", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "bcf", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# bcf configuration

# Archive opened when no -f/--file flag is given.
# default_file = "/path/to/project.bcf"

# Author identity stamped on created and modified topics and comments.
# author = "you@example.com"

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
