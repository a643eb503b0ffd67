package transcriber

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/tubescribe/internal/config"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

// RetryPolicy bounds retries of ServiceError outcomes. Attempts counts the
// first call, so 1 disables retrying.
type RetryPolicy struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

type implTranscriber struct {
	recognizer Recognizer
	retry      RetryPolicy
	logger     logger.Logger
	wait       func(ctx context.Context, d time.Duration) error
}

// New creates a Transcriber around a Recognizer
func New(rec Recognizer, retry RetryPolicy, log logger.Logger) Transcriber {
	if retry.Attempts <= 0 {
		retry.Attempts = 1
	}
	return &implTranscriber{
		recognizer: rec,
		retry:      retry,
		logger:     log,
		wait:       sleepContext,
	}
}

// NewRecognizer builds the backend selected in cfg.
func NewRecognizer(ctx context.Context, cfg config.TranscriberConfig, log logger.Logger) (Recognizer, error) {
	switch cfg.Backend {
	case "whisper", "":
		return NewWhisperRecognizer(cfg.Whisper.URL, cfg.Whisper.Timeout, log), nil
	case "openai":
		return NewOpenAIRecognizer(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL), nil
	case "gemini":
		return NewGeminiRecognizer(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	default:
		return nil, fmt.Errorf("unknown transcriber backend %q", cfg.Backend)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
