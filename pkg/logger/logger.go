package logger

//go:generate mockgen -source=logger.go -destination=mock/logger.go -package=mock_logger

import (
	"context"
	"time"
)

type Level int

const (
	DebugLevel Level = iota - 4
	InfoLevel
	WarnLevel
	ErrorLevel
)

type (
	Attr struct {
		Key   string
		Value any
	}

	// Logger is the structured logger every component receives. Lifecycle
	// messages use the sugared *w methods, request paths use LogAttrs.
	Logger interface {
		Debugw(msg string, keysAndValues ...any)
		Infow(msg string, keysAndValues ...any)
		Warnw(msg string, keysAndValues ...any)
		Errorw(msg string, keysAndValues ...any)

		LogAttrs(ctx context.Context, level Level, msg string, attrs ...Attr)

		// Ctx returns a logger carrying the request id stored in ctx, if any.
		Ctx(ctx context.Context) Logger
		With(args ...any) Logger

		WithRequestID(ctx context.Context, requestID string) context.Context
		GenerateRequestID() string
	}
)

func String(key string, value string) Attr {
	return Attr{Key: key, Value: value}
}

func Int(key string, value int) Attr {
	return Attr{Key: key, Value: value}
}

// Duration renders d in its String form so log lines stay readable.
func Duration(key string, d time.Duration) Attr {
	return Attr{Key: key, Value: d.String()}
}

func Err(err error) Attr {
	return Attr{Key: "error", Value: err}
}
