package logger_test

import (
	"context"
	"testing"

	"supplyhub/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("Production", func(t *testing.T) {
		l, err := logger.New("production")
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("Development", func(t *testing.T) {
		l, err := logger.New("development")
		require.NoError(t, err)
		assert.NotNil(t, l)
	})
}

func TestRequestID(t *testing.T) {
	ctx := logger.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", logger.RequestIDFrom(ctx))
	assert.Empty(t, logger.RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	t.Run("adds request id", func(t *testing.T) {
		ctx := logger.WithRequestID(context.Background(), "req-abc-123")

		logger.FromCtx(ctx, base).Info("with id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "req-abc-123", logs[0].ContextMap()["request_id"])
	})

	t.Run("without request id", func(t *testing.T) {
		logger.FromCtx(context.Background(), base).Info("without id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})

	t.Run("prefers the logger stored in context", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), base.With(zap.String("component", "http")))

		logger.FromCtx(ctx, zap.NewNop()).Info("stored")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "http", logs[0].ContextMap()["component"])
	})

	t.Run("nil fallback does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger.FromCtx(context.Background(), nil).Info("dropped")
		})
	})
}
