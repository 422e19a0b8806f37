package config

import (
	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/render"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the .kalias.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Separator is trimmed from both ends of generated alias names.
	Separator string `yaml:"separator" mapstructure:"separator"`

	// Format is the alias syntax: bash (also zsh, sh) or fish.
	Format string `yaml:"format" mapstructure:"format"`

	// Header is a file whose contents replace the built-in license header.
	Header string `yaml:"header" mapstructure:"header"`

	// NoHeader suppresses the license header even when not writing to a terminal.
	NoHeader bool `yaml:"no_header" mapstructure:"no_header"`

	// Table is a YAML fragment table used instead of the built-in kubectl table.
	Table string `yaml:"table" mapstructure:"table"`

	// MaxUnordered caps the fragment count of unordered groups. 0 disables the cap.
	MaxUnordered int `yaml:"max_unordered" mapstructure:"max_unordered"`

	// path is where the config was loaded from, empty for defaults.
	path string
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		Separator:    render.DefaultSeparator,
		Format:       "bash",
		MaxUnordered: fragment.DefaultMaxUnordered,
	}
}
