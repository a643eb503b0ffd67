package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

// Transcribe reads the segment file and submits it to the recognizer.
// Service errors are retried with exponential backoff up to the policy's
// attempt count; every other outcome is returned as soon as it is known.
func (t *implTranscriber) Transcribe(ctx context.Context, segment model.AudioSegment, language string) model.Outcome {
	audio, err := os.ReadFile(segment.Path)
	if err != nil {
		return model.UnknownError(fmt.Errorf("read %s: %w", segment.Path, err))
	}

	backoff := t.retry.InitialBackoff
	var outcome model.Outcome
	for attempt := 1; attempt <= t.retry.Attempts; attempt++ {
		outcome = t.recognize(ctx, audio, language)
		outcome.Attempts = attempt
		if outcome.Kind != model.OutcomeServiceError || attempt == t.retry.Attempts {
			break
		}

		t.logger.Warn(ctx, "%s: %s attempt %d/%d failed, retrying in %s: %v",
			segment, t.recognizer.Name(), attempt, t.retry.Attempts, backoff, outcome.Err)
		if err := t.wait(ctx, backoff); err != nil {
			break
		}
		backoff = nextBackoff(backoff, t.retry.MaxBackoff)
	}

	return outcome
}

func (t *implTranscriber) recognize(ctx context.Context, audio []byte, language string) model.Outcome {
	text, err := t.recognizer.Recognize(ctx, audio, language)
	switch {
	case err == nil:
		return model.Success(text)
	case errors.Is(err, ErrNoSpeech):
		return model.NoSpeech()
	case errors.Is(err, ErrServiceUnavailable):
		return model.ServiceError(err)
	default:
		return model.UnknownError(err)
	}
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next <= 0 {
		next = current
	}
	if limit > 0 && next > limit {
		return limit
	}
	return next
}

// baseLanguage reduces a BCP 47 tag such as pt-BR to its primary subtag,
// which is what the Whisper family accepts.
func baseLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
