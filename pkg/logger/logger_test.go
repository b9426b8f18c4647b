package logger

import (
	"os"
	"path/filepath"
	"testing"

	"catalog/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNilLoggerSafety(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	assert.NotPanics(t, func() {
		Debug("debug")
		Info("info")
		Warn("warn")
		Error("error")
		With(zap.String("key", "value")).Info("with")
		WithOperationID("op-1").Info("with operation id")
	})
	assert.NoError(t, Sync())
}

func TestReplace_RestoresPrevious(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	original := Get()

	restore := Replace(zap.New(core))
	Info("captured", zap.String("aggregate_id", "abc"))
	restore()

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "captured", entry.Message)
	assert.Equal(t, "abc", entry.ContextMap()["aggregate_id"])
	assert.True(t, original == Get())
}

func TestWithOperationID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	WithOperationID("op-42").Warn("publish failed")

	require.Equal(t, 1, logs.FilterMessage("publish failed").Len())
	assert.Equal(t, "op-42", logs.All()[0].ContextMap()["operation_id"])
}

func TestInit_Level(t *testing.T) {
	require.NoError(t, Init(&config.LogConfig{Level: "warn", Output: "stdout"}, "development"))
	defer Sync()

	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "catalog.log")

	require.NoError(t, Init(&config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}, "production"))

	Info("file logger initialized")
	for i := 0; i < 10; i++ {
		Info("log entry", zap.Int("entry", i))
	}
	require.NoError(t, Sync())

	info, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}
