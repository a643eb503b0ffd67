package logger

import "context"

// Logger is a levelled printf-style logger. The context may carry a batch
// identifier (see WithBatchID) which is attached to every line.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	Sync() error
}
