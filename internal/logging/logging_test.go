package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Format = format

			logger, err := New(cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
			assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestNew_Level(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Level = zapcore.DebugLevel
	cfg.Development = true

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "xml"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.False(t, Nop().Core().Enabled(zapcore.ErrorLevel))
}

func TestNewObserved(t *testing.T) {
	logger, logs := NewObserved()

	logger.Debug("resolved call", zap.String("call", "PrintPoint"))
	logger.Info("wrote file")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "PrintPoint", logs.FilterMessage("resolved call").All()[0].ContextMap()["call"])
}
