package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/someonegg/secretsanta/internal/logger"
)

const (
	envPrefix  = "SANTA_"
	envConfig  = "SANTA_CONFIG"
	keyDelimit = "."
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. the YAML file at path, or at $SANTA_CONFIG when path is empty
//  3. env (prefix SANTA_, e.g. SANTA_OUTPUT_DIR)
//
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(keyDelimit)

	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// SANTA_OUTPUT_DIR -> output_dir; underscores are kept to match the
	// koanf tags.
	envProvider := env.Provider(envPrefix, keyDelimit, func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	return &cfg, nil
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputPrefix) == "" {
		return fmt.Errorf("%w: output_prefix must not be empty", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for i, a := range c.Aliases {
		if strings.TrimSpace(a.From) == "" || strings.TrimSpace(a.To) == "" {
			return fmt.Errorf("%w: alias %d (%q -> %q) has an empty side", ErrInvalidConfig, i, a.From, a.To)
		}
	}
	return nil
}
