package logger

import (
	"errors"
	"fmt"
	"os"

	"itemsvc/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewZapLogger writes JSON lines to the console and, when cfg.Logger names a
// file, to a lumberjack-rotated file. Level and rotation come from cfg.
func NewZapLogger(cfg *config.Config, opts ...Option) (*zap.Logger, error) {
	const op = "logger.NewZapLogger"

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("%s: parse level: %w", op, err)
	}

	o := &zapOptions{console: zapcore.AddSync(os.Stdout)}
	for _, opt := range opts {
		opt(o)
	}

	sinks := []zapcore.WriteSyncer{o.console}
	if cfg.Logger.Filename != "" && !o.noFile {
		if err = validateRotation(&cfg.Logger); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    cfg.Logger.MaxSize,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAge:     cfg.Logger.MaxAge,
			Compress:   true,
		}))
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(sinks...),
		level,
	)

	return zap.New(core,
		zap.Fields(
			zap.String("service", cfg.App.Name),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.Storage.Driver),
		),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	), nil
}

func validateRotation(cfg *config.Logger) error {
	switch {
	case cfg.MaxSize <= 0:
		return errors.New("invalid max_size: must be > 0")
	case cfg.MaxBackups <= 0:
		return errors.New("invalid max_backups: must be > 0")
	case cfg.MaxAge <= 0:
		return errors.New("invalid max_age: must be > 0")
	}
	return nil
}
