package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"restaurant/config"
	"restaurant/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func useObserver(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	original := log
	t.Cleanup(func() { log = original })

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)
	return logs
}

func TestNilLoggerSafety(t *testing.T) {
	original := log
	defer func() { log = original }()
	log = nil

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	assert.NotNil(t, With(zap.String("key", "value")))
	assert.NotNil(t, WithRequestID("req-1"))
	assert.NotNil(t, WithContext(map[string]any{"k": "v"}))
	assert.NotNil(t, FromContext(context.Background()))
	assert.NoError(t, Sync())
}

func TestFromContextAddsRequestID(t *testing.T) {
	logs := useObserver(t)

	ctx := persistence.ContextWithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("cart checked out")
	FromContext(context.Background()).Info("no request")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestWithContextTypes(t *testing.T) {
	logs := useObserver(t)

	WithContext(map[string]any{
		"string_field": "value",
		"int_field":    123,
		"int64_field":  int64(1234567890),
		"float_field":  3.14,
		"bool_field":   true,
	}).Info("typed fields")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "value", fields["string_field"])
	assert.Equal(t, int64(123), fields["int_field"])
	assert.Equal(t, true, fields["bool_field"])
}

func TestInitAndDynamicLevel(t *testing.T) {
	original := log
	defer func() { log = original }()

	require.NoError(t, Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"))
	assert.True(t, atomLevel.Enabled(zapcore.DebugLevel))

	UpdateLevel("warn")
	assert.False(t, atomLevel.Enabled(zapcore.InfoLevel))
	assert.True(t, atomLevel.Enabled(zapcore.WarnLevel))

	UpdateLevel("unknown")
	assert.True(t, atomLevel.Enabled(zapcore.InfoLevel))
}

func TestFileOutput(t *testing.T) {
	original := log
	defer func() { log = original }()

	path := filepath.Join(t.TempDir(), "nested", "app.log")
	require.NoError(t, Init(&config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	}, "production"))

	for i := 0; i < 10; i++ {
		Info("order updated", zap.Int("entry", i))
	}
	_ = Sync()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRotatingWriterDefaults(t *testing.T) {
	w := newRotatingWriter(&config.LogConfig{FilePath: "logs/app.log"})
	assert.Equal(t, 10, w.MaxSize)
	assert.Equal(t, 5, w.MaxBackups)
	assert.Equal(t, 7, w.MaxAge)

	w = newRotatingWriter(&config.LogConfig{FilePath: "x.log", MaxSizeMB: 50, MaxBackups: 2, MaxAgeDays: 1, Compress: true})
	assert.Equal(t, 50, w.MaxSize)
	assert.Equal(t, 2, w.MaxBackups)
	assert.Equal(t, 1, w.MaxAge)
	assert.True(t, w.Compress)
}

func TestReplaceRestores(t *testing.T) {
	original := log
	core, logs := observer.New(zapcore.InfoLevel)

	restore := Replace(zap.New(core))
	Info("captured")
	restore()

	assert.Equal(t, 1, logs.Len())
	assert.Same(t, original, log)
}
