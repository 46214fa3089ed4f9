package logger

import (
	"context"
	"fmt"

	"itemsvc/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const _missingValue = "<missing>"

// Adapter exposes a zap logger through the Logger interface.
type Adapter struct {
	zap *zap.Logger
}

var _ Logger = (*Adapter)(nil)

func NewAdapter(cfg *config.Config, opts ...Option) (*Adapter, error) {
	zl, err := NewZapLogger(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("logger.NewAdapter: %w", err)
	}
	return &Adapter{zap: zl}, nil
}

func (a *Adapter) Debugw(msg string, keysAndValues ...any) {
	a.zap.Sugar().Debugw(msg, keysAndValues...)
}

func (a *Adapter) Infow(msg string, keysAndValues ...any) {
	a.zap.Sugar().Infow(msg, keysAndValues...)
}

func (a *Adapter) Warnw(msg string, keysAndValues ...any) {
	a.zap.Sugar().Warnw(msg, keysAndValues...)
}

func (a *Adapter) Errorw(msg string, keysAndValues ...any) {
	a.zap.Sugar().Errorw(msg, keysAndValues...)
}

func (a *Adapter) LogAttrs(ctx context.Context, level Level, msg string, attrs ...Attr) {
	zapLevel := toZapLevel(level)
	if !a.zap.Core().Enabled(zapLevel) {
		return
	}

	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, zap.Any(attr.Key, attr.Value))
	}

	a.forContext(ctx).Log(zapLevel, msg, fields...)
}

func (a *Adapter) Ctx(ctx context.Context) Logger {
	return &Adapter{zap: a.forContext(ctx)}
}

func (a *Adapter) With(args ...any) Logger {
	if len(args)%2 != 0 {
		args = append(args, _missingValue)
	}

	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}

	return &Adapter{zap: a.zap.With(fields...)}
}

func (a *Adapter) Sync() error {
	return a.zap.Sync()
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
