package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

const (
	// RequestIDKey carries the per-call clustering request id.
	RequestIDKey ContextKey = "cluster.request.id"
	// StageKey carries the pipeline stage currently executing.
	StageKey ContextKey = "cluster.stage"
)

// ContextLogger decorates log records with request-scoped fields pulled
// from the context, so every pipeline log line of one call is joinable.
type ContextLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewContextLogger creates a context-aware logger on top of base.
func NewContextLogger(serviceName string, base *slog.Logger) *ContextLogger {
	return &ContextLogger{
		logger:      base,
		serviceName: serviceName,
	}
}

// WithContext returns a logger with context values added as fields.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger.With("service", cl.serviceName)

	var fields []any
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields = append(fields, string(RequestIDKey), requestID)
	}
	if stage := ctx.Value(StageKey); stage != nil {
		fields = append(fields, string(StageKey), stage)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}
	return logger
}

// WithRequestID adds the clustering request id to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithStage adds the pipeline stage to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}
