// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level       zapcore.Level `koanf:"level"`
	Format      string        `koanf:"format"`
	Development bool          `koanf:"development"`
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() Config {
	return Config{
		Level:  zapcore.InfoLevel,
		Format: "console",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.Format)
	}
}

// New creates a logger writing to stderr.
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	core := zapcore.NewCore(newEncoder(cfg), zapcore.Lock(os.Stderr), cfg.Level)

	opts := []zap.Option{}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	return zap.New(core, opts...), nil
}

// newEncoder creates JSON or console encoder.
func newEncoder(cfg Config) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}

	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}

	return zapcore.NewJSONEncoder(encoderCfg)
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
