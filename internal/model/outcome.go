package model

import "strings"

// OutcomeKind classifies the result of transcribing one segment.
type OutcomeKind string

const (
	OutcomeSuccess      OutcomeKind = "success"
	OutcomeNoSpeech     OutcomeKind = "no_speech"
	OutcomeServiceError OutcomeKind = "service_error"
	OutcomeUnknownError OutcomeKind = "unknown_error"
)

// Outcome is the per-segment transcription result. Text is non-empty only
// for OutcomeSuccess; Err carries the cause for the error kinds.
type Outcome struct {
	Kind     OutcomeKind
	Text     string
	Err      error
	Attempts int
}

// Success builds a success outcome. Blank text is reported as no speech.
func Success(text string) Outcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{Kind: OutcomeNoSpeech}
	}
	return Outcome{Kind: OutcomeSuccess, Text: text}
}

func NoSpeech() Outcome {
	return Outcome{Kind: OutcomeNoSpeech}
}

func ServiceError(err error) Outcome {
	return Outcome{Kind: OutcomeServiceError, Err: err}
}

func UnknownError(err error) Outcome {
	return Outcome{Kind: OutcomeUnknownError, Err: err}
}

// OK reports whether the outcome contributes text.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Message returns the error text, or "" when there is none.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// JoinOutcomes space-joins the success texts in slice order. The boolean is
// false when no outcome succeeded.
func JoinOutcomes(outcomes []Outcome) (string, bool) {
	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			parts = append(parts, o.Text)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}
