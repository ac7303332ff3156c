package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

const (
	// EnvPrefix prefixes every environment override, e.g. LIGHTNESS_MODE.
	EnvPrefix = "LIGHTNESS_"
	// EnvConfigPath names the YAML file when no path argument is given.
	EnvConfigPath = "LIGHTNESS_CONFIG"
	// DefaultFileName is looked up next to the executable as a last resort.
	DefaultFileName = "config.yaml"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. a YAML file: path if non-empty, else $LIGHTNESS_CONFIG, else
//     config.yaml beside the executable when it exists
//  3. env (prefix LIGHTNESS_)
//
// An explicitly named file that cannot be read is an error.
func Load(_ context.Context, path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = besideExecutable()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: load %s: %v", fault.ErrConfig, path, err)
		}
	}

	// LIGHTNESS_TOP_LEFT_X -> top_left_x; underscores are kept to match the tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", fault.ErrConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", fault.ErrConfig, err)
	}
	return &cfg, nil
}

func besideExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(filepath.Dir(exe), DefaultFileName)
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
