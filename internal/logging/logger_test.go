package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"chatty":  zapcore.InfoLevel,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("warn")
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestKankaLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := KankaLogger(zap.New(core))

	logger.Debug("HTTP Request", map[string]interface{}{"method": "GET", "url": "/characters"})
	logger.Warn("retrying", nil)
	logger.Error("HTTP Request failed", map[string]interface{}{"error": errors.New("boom")})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{"method": "GET", "url": "/characters"}, entries[0].ContextMap())

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Empty(t, entries[1].Context)

	assert.Equal(t, "HTTP Request failed", entries[2].Message)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestKankaLogger_Nil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		KankaLogger(nil).Info("ignored", map[string]interface{}{"k": 1})
	})
}
