package logger

import (
	"context"
	"testing"
	"time"

	"restaurant/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func observeGorm(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	original := log
	t.Cleanup(func() { log = original })

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)
	return logs
}

func TestGormLoggerAdapterLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     logger.LogLevel
		wantInfo  bool
		wantWarn  bool
		wantTrace bool
	}{
		{"silent", logger.Silent, false, false, false},
		{"warn", logger.Warn, false, true, false},
		{"info", logger.Info, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observeGorm(t)
			adapter := NewGormLoggerAdapter(tt.level)

			adapter.Info(context.Background(), "cart %s created", "c-1")
			adapter.Warn(context.Background(), "line %d retried", 2)
			adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
				return "SELECT * FROM orders WHERE singleton_key = 'u-1:CART'", 1
			}, nil)

			assert.Equal(t, tt.wantInfo, logs.FilterMessage("cart c-1 created").Len() == 1)
			assert.Equal(t, tt.wantWarn, logs.FilterMessage("line 2 retried").Len() == 1)

			traces := logs.FilterMessage("SQL query executed").All()
			if !tt.wantTrace {
				assert.Empty(t, traces)
				return
			}
			require.Len(t, traces, 1)
			assert.Equal(t, "SELECT * FROM orders WHERE singleton_key = 'u-1:CART'", traces[0].ContextMap()["sql"])
			assert.Equal(t, int64(1), traces[0].ContextMap()["rows"])
		})
	}
}

func TestGormLoggerAdapterLogModeKeepsConfig(t *testing.T) {
	cfg := &GormLoggerConfig{SlowThreshold: time.Minute}
	adapter := NewGormLoggerAdapterWithConfig(logger.Warn, cfg)

	switched, ok := adapter.LogMode(logger.Info).(*GormLoggerAdapter)
	require.True(t, ok)
	assert.Equal(t, logger.Info, switched.logLevel)
	assert.Same(t, cfg, switched.config)
	assert.Equal(t, logger.Warn, adapter.logLevel)
}

func TestGormLoggerAdapterSlowQuery(t *testing.T) {
	logs := observeGorm(t)
	adapter := NewGormLoggerAdapterWithConfig(logger.Warn, &GormLoggerConfig{SlowThreshold: 10 * time.Millisecond})

	ctx := persistence.ContextWithRequestID(context.Background(), "req-42")
	adapter.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM order_lines WHERE order_id = 'o-1'", 3
	}, nil)

	slow := logs.FilterMessage("Slow SQL query").All()
	require.Len(t, slow, 1)
	assert.Equal(t, zapcore.WarnLevel, slow[0].Level)
	assert.Equal(t, "req-42", slow[0].ContextMap()["request_id"])
	assert.Equal(t, "slow_query", slow[0].ContextMap()["type"])
}

func TestGormLoggerAdapterRecordNotFound(t *testing.T) {
	find := func() (string, int64) { return "SELECT * FROM products WHERE id = 'missing'", 0 }

	t.Run("ignored by default", func(t *testing.T) {
		logs := observeGorm(t)
		NewGormLoggerAdapter(logger.Warn).Trace(context.Background(), time.Now(), find, logger.ErrRecordNotFound)
		assert.Zero(t, logs.FilterMessage("Database operation failed").Len())
	})

	t.Run("reported when configured", func(t *testing.T) {
		logs := observeGorm(t)
		adapter := NewGormLoggerAdapterWithConfig(logger.Warn, &GormLoggerConfig{SlowThreshold: time.Second})
		adapter.Trace(context.Background(), time.Now(), find, logger.ErrRecordNotFound)

		entries := logs.FilterMessage("Database operation failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})
}
