package transcriber

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

var (
	// ErrNoSpeech is returned by a Recognizer when the audio holds no
	// intelligible speech.
	ErrNoSpeech = errors.New("no intelligible speech")
	// ErrServiceUnavailable is returned by a Recognizer when the backend
	// could not be reached or failed on its side.
	ErrServiceUnavailable = errors.New("speech service unavailable")
)

// Transcriber turns one audio segment into a classified outcome.
type Transcriber interface {
	Transcribe(ctx context.Context, segment model.AudioSegment, language string) model.Outcome
}

// Recognizer is a speech-to-text backend operating on a whole WAV buffer.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte, language string) (string, error)
	Name() string
}
