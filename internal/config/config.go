// Package config holds runtime configuration: defaults, koanf-layered
// loading, and validation. The two directory paths come from positional
// arguments; everything else is display/logging concern.
package config

import (
	"errors"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// [Load] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from the two positional args).
	SourceDir string `koanf:"-"`
	DestDir   string `koanf:"-"`

	// Display and logging.
	ColorMode ColorMode `koanf:"color"`
	Verbose   bool      `koanf:"verbose"`
	LogFile   string    `koanf:"log"` // Optional log file path.
	CheckOnly bool      `koanf:"check"`
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [Load] applies environment and CLI overrides.
func DefaultConfig() Config {
	return Config{
		ColorMode: ColorAuto,
		Verbose:   false,
		CheckOnly: false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that the color mode holds a valid value and that both
// directory paths are set.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.SourceDir == "" || c.DestDir == "" {
		return errors.New("need exactly source_dir and dest_dir")
	}
	return nil
}
