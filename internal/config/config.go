// Package config provides configuration loading for format-generator.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"format-generator/internal/logging"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "FORMATGEN_"
	// DefaultFile is read from the working directory when no file is named.
	DefaultFile = "formatgen.yaml"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Config holds the generator configuration.
type Config struct {
	// OutputDir receives generated files; empty means next to each call-site file.
	OutputDir string `koanf:"output_dir"`
	// Strict turns resolution warnings into errors.
	Strict bool `koanf:"strict"`
	// Comments enables doc comments on generated functions.
	Comments bool `koanf:"comments"`
	// Packages are extra package patterns loaded for every call-site file.
	Packages []string       `koanf:"packages"`
	Log      logging.Config `koanf:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Comments: true,
		Log:      logging.NewDefaultConfig(),
	}
}

// Load loads configuration from a YAML file, then overrides it with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (FORMATGEN_OUTPUT_DIR, FORMATGEN_LOG_LEVEL, etc.)
//  2. YAML config file
//  3. Defaults
//
// An empty path reads DefaultFile when it exists. A named file must exist.
//
// Environment variables drop the prefix and are lowercased; a LOG_ section
// maps to the log block:
//
//	FORMATGEN_OUTPUT_DIR -> output_dir
//	FORMATGEN_LOG_LEVEL  -> log.level
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return c.Log.Validate()
}

func readFile(path string) ([]byte, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return content, nil
}

// envKey maps FORMATGEN_LOG_LEVEL to log.level and FORMATGEN_OUTPUT_DIR to output_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))

	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}

	return key
}
