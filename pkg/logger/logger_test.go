package logger_test

import (
	"artisan/pkg/logger"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return logger.WithLogger(context.Background(), zap.New(core)), logs
}

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		debug       bool
		wantDebug   bool
	}{
		{name: "development", environment: logger.DevelopmentEnvironment, wantDebug: true},
		{name: "production", environment: logger.ProductionEnvironment},
		{name: "production with debug", environment: logger.ProductionEnvironment, debug: true, wantDebug: true},
		{name: "unknown falls back to development", environment: "staging", wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() { logger.Setup(tt.environment, tt.debug) })
			require.NotNil(t, logger.Get(context.Background()))
			require.Equal(t, tt.wantDebug, logger.Get(context.Background()).Core().Enabled(zap.DebugLevel))
		})
	}
}

func TestGet_PrefersContextLogger(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment, false)

	custom := zap.NewNop()
	ctx := logger.WithLogger(context.Background(), custom)

	require.Same(t, custom, logger.Get(ctx))
	require.NotSame(t, custom, logger.Get(context.Background()))
}

func TestWithFields_AddsFieldsToLaterLines(t *testing.T) {
	ctx, logs := observed(zap.DebugLevel)

	ctx = logger.WithFields(ctx, zap.Int64("jobID", 42))
	ctx = logger.WithUserID(ctx, "5f0c7c1e-2b40-4d1e-9d49-1c0d7c1c9a11")
	logger.Info(ctx, "otp sent")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, int64(42), fields["jobID"])
	require.Equal(t, "5f0c7c1e-2b40-4d1e-9d49-1c0d7c1c9a11", fields["userID"])
}

func TestWithFields_DoesNotLeakToParent(t *testing.T) {
	parent, logs := observed(zap.DebugLevel)

	_ = logger.WithUserID(parent, "someone")
	logger.Info(parent, "unrelated")

	require.NotContains(t, logs.All()[0].ContextMap(), "userID")
}

func TestLevelHelpers(t *testing.T) {
	ctx, logs := observed(zap.InfoLevel)

	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	require.Equal(t, 3, logs.Len())
	require.Equal(t, zap.InfoLevel, logs.All()[0].Level)
	require.Equal(t, zap.WarnLevel, logs.All()[1].Level)
	require.Equal(t, zap.ErrorLevel, logs.All()[2].Level)
	require.False(t, logger.Get(ctx).Core().Enabled(zap.DebugLevel))
}
