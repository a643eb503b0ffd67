package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type batchIDKey struct{}

type implLogger struct {
	sugar *zap.SugaredLogger
}

// New creates a console Logger writing to stdout at the given level.
func New(level string) Logger {
	return NewWithFormat(level, "console")
}

// NewWithFormat creates a Logger; format is "console" or "json".
func NewWithFormat(level, format string) Logger {
	atom := zap.NewAtomicLevelAt(parseLevel(level))

	var cfg zap.Config
	if strings.ToLower(format) == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = atom
	cfg.OutputPaths = []string{"stdout"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.CallerKey = "caller"

	base, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewNop()
	}

	return &implLogger{
		sugar: base.Sugar(),
	}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &implLogger{
		sugar: zap.NewNop().Sugar(),
	}
}

// WithBatchID returns a context whose log lines carry the batch id.
func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, batchIDKey{}, id)
}

// BatchID returns the batch id stored in ctx, if any.
func BatchID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(batchIDKey{}).(string)
	return id
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *implLogger) with(ctx context.Context) *zap.SugaredLogger {
	if id := BatchID(ctx); id != "" {
		return l.sugar.With("batch", id)
	}
	return l.sugar
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.with(ctx).Errorf(msg, args...)
}

func (l *implLogger) Sync() error {
	return l.sugar.Sync()
}
