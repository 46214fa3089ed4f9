package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey struct{}

const _requestIDField = "request_id"

func (a *Adapter) WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

func (a *Adapter) GenerateRequestID() string {
	return uuid.NewString()
}

func requestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(contextKey{}).(string)
	return requestID
}

// forContext derives a zap logger with the request id of ctx attached.
// Loggers derived with With keep their own fields.
func (a *Adapter) forContext(ctx context.Context) *zap.Logger {
	if requestID := requestIDFrom(ctx); requestID != "" {
		return a.zap.With(zap.String(_requestIDField, requestID))
	}
	return a.zap
}
