// Package observability carries the process logger: structured JSON on
// stdout, with the request id flowing through the context.
package observability

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// WithRequestID stores a request id in the context so every log line
// produced while handling that request can be correlated.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// LoggerFromContext returns the process logger, tagged with the
// context's request id when one is present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	reqID, _ := ctx.Value(ctxKeyRequestID).(string)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
