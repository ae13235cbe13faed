package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_ConfiguresLevel(t *testing.T) {
	t.Cleanup(func() { globalLogger = zap.NewNop() })

	require.NoError(t, Init("debug", "json"))
	assert.True(t, Logger().Core().Enabled(zap.DebugLevel))

	require.NoError(t, Init("not-a-level", "development"))
	assert.False(t, Logger().Core().Enabled(zap.DebugLevel))
	assert.True(t, Logger().Core().Enabled(zap.InfoLevel))
}

func TestHelpers_EmitEntries(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	t.Cleanup(func() { globalLogger = zap.NewNop() })
	globalLogger = zap.New(core)

	Info("info message", zap.String("k", "v"))
	Error("error message")
	Warn("warn message")
	Debug("debug message")

	require.Equal(t, 4, recorded.Len())
	entries := recorded.All()
	assert.Equal(t, "info message", entries[0].Message)
	assert.Equal(t, "debug message", entries[3].Message)
	assert.Equal(t, "v", entries[0].ContextMap()["k"])
}

func TestWithModule_AttachesField(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	t.Cleanup(func() { globalLogger = zap.NewNop() })
	globalLogger = zap.New(core)

	WithModule("triggers").Info("hello")

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "triggers", recorded.All()[0].ContextMap()["module"])
}
