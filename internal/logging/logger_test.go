package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Setenv("JOURNAL_DEBUG", "")

	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), tt.input)
	}
}

func TestParseLevel_DebugOverride(t *testing.T) {
	t.Setenv("JOURNAL_DEBUG", "1")
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("error"))
}

func TestGlobalHelpersWriteToReplacedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	Infof("applied migration %d", 2)
	With("user_id", "u1").Warnf("slow query")
	Errorf("boom")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "applied migration 2", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "u1", entries[1].ContextMap()["user_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestInit(t *testing.T) {
	t.Setenv("JOURNAL_DEBUG", "")
	prev := Get()
	defer func() { Replace(prev.Desugar()) }()

	require.NoError(t, Init("warn", "production"))
	assert.False(t, Get().Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestGetBeforeInitIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Get().Infof("nothing to see")
		Debugf("still nothing")
	})
}
