package logger

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. debug switches to the human-readable
// development encoder.
func New(level string, debug bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		if lvl > zapcore.DebugLevel {
			lvl = zapcore.DebugLevel
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	logger := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, logger.With(fields...))
}

// WithAction adds "action" field to context logger to describe the flow
func WithAction(ctx context.Context, action string) context.Context {
	logger := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, logger.With(zap.String("action", action)))
}

// WithUser tags the context logger with the chat user id
func WithUser(ctx context.Context, userID int64) context.Context {
	return AddFields(ctx, zap.Int64("user_id", userID))
}
