package logger

import (
	"io"

	"go.uber.org/zap/zapcore"
)

type Option func(*zapOptions)

type zapOptions struct {
	console zapcore.WriteSyncer
	noFile  bool
}

// Output replaces stdout as the console sink.
func Output(w io.Writer) Option {
	return func(o *zapOptions) {
		o.console = zapcore.AddSync(w)
	}
}

// WithoutFile disables the rotated log file even when one is configured.
func WithoutFile() Option {
	return func(o *zapOptions) {
		o.noFile = true
	}
}
