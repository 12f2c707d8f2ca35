package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

// WithRequestID stores a request ID for RequestIDExtractor.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithUserID stores the ID of the user a request is about for UserIDExtractor.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequestIDExtractor adds request_id when present in ctx.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}

// UserIDExtractor adds user_id when present in ctx.
func UserIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return slog.String("user_id", id), true
	}
	return slog.Attr{}, false
}
