package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := WithBatchID(context.Background(), "batch-1")
	log := NewWithFormat("info", "json")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	log.Info(ctx, "formatted message: %s %d", "test", 123)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBatchIDField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &implLogger{sugar: zap.New(core).Sugar()}

	log.Debug(context.Background(), "hidden")
	log.Info(WithBatchID(context.Background(), "abc"), "chunk %d done", 3)
	log.Warn(context.Background(), "plain")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (debug filtered)", len(entries))
	}
	if entries[0].Message != "chunk 3 done" {
		t.Errorf("message = %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["batch"]; got != "abc" {
		t.Errorf("batch field = %v, want abc", got)
	}
	if _, ok := entries[1].ContextMap()["batch"]; ok {
		t.Error("batch field should be absent without an id")
	}
}

func TestBatchID(t *testing.T) {
	if got := BatchID(context.Background()); got != "" {
		t.Errorf("BatchID() = %q, want empty", got)
	}
	ctx := WithBatchID(context.Background(), "abc")
	if got := BatchID(ctx); got != "abc" {
		t.Errorf("BatchID() = %q, want abc", got)
	}
}
