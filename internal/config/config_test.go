package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "formatgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Comments)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
output_dir: gen
strict: true
comments: false
packages: [format-generator/examples/units]
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gen", cfg.OutputDir)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.Comments)
	assert.Equal(t, []string{"format-generator/examples/units"}, cfg.Packages)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output_dir: out\n")
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "output_dir: gen\nlog:\n  level: warn\n")

	t.Setenv("FORMATGEN_OUTPUT_DIR", "from-env")
	t.Setenv("FORMATGEN_LOG_LEVEL", "debug")
	t.Setenv("FORMATGEN_LOG_DEVELOPMENT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OutputDir)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "output_dir: [\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "log:\n  format: xml\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "log format")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "output_dir", envKey("FORMATGEN_OUTPUT_DIR"))
	assert.Equal(t, "log.level", envKey("FORMATGEN_LOG_LEVEL"))
	assert.Equal(t, "strict", envKey("FORMATGEN_STRICT"))
}
