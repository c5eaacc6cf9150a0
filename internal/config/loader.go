package config

// This file implements layered configuration loading with koanf:
// coded defaults ← SEGMV_* environment variables ← command-line flags.
// Flag names map 1:1 to koanf keys (color, verbose, log, check).

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix namespaces the environment variables read by Load
// (e.g. SEGMV_COLOR=never, SEGMV_LOG=/tmp/segmv.log).
const EnvPrefix = "SEGMV_"

// Load builds a Config from defaults, environment variables, and the parsed
// flag set, in increasing priority. args are the two positional directory
// arguments; fewer than two leaves the paths empty for Validate to reject.
func Load(flags *pflag.FlagSet, args []string) (Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"color":   string(defaults.ColorMode),
		"verbose": defaults.Verbose,
		"log":     defaults.LogFile,
		"check":   defaults.CheckOnly,
	}, "."), nil); err != nil {
		return defaults, fmt.Errorf("failed to load defaults: %w", err)
	}

	// SEGMV_COLOR -> color, SEGMV_LOG -> log, ...
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return defaults, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Flags win over env; passing k means flags left at their defaults do
	// not clobber keys already set by lower layers.
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return defaults, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := defaults
	if err := k.Unmarshal("", &cfg); err != nil {
		return defaults, fmt.Errorf("unable to decode config: %w", err)
	}

	if len(args) >= 2 {
		cfg.SourceDir = NormalizeDirArg(args[0])
		cfg.DestDir = NormalizeDirArg(args[1])
	}
	return cfg, nil
}
