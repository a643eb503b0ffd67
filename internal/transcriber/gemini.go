package transcriber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const noSpeechMarker = "[NO_SPEECH]"

const geminiPrompt = `Transcribe the speech in the attached audio verbatim. The expected language is %s.
Return only the transcript text, without timestamps, speaker labels or commentary.
If the audio contains no intelligible speech, return exactly ` + noSpeechMarker + `.`

// GeminiRecognizer sends inline WAV audio to a Gemini model.
type GeminiRecognizer struct {
	client *genai.Client
	model  string
}

// NewGeminiRecognizer creates a Gemini client for the given API key
func NewGeminiRecognizer(ctx context.Context, apiKey, model string) (*GeminiRecognizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiRecognizer{client: client, model: model}, nil
}

func (g *GeminiRecognizer) Name() string {
	return "gemini"
}

func (g *GeminiRecognizer) Recognize(ctx context.Context, audio []byte, language string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf(geminiPrompt, language)),
			genai.NewPartFromBytes(audio, "audio/wav"),
		}, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", classifyGeminiError(err)
	}

	return geminiText(result)
}

func geminiText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	text = strings.TrimSpace(text)
	if text == "" || strings.Contains(text, noSpeechMarker) {
		return "", ErrNoSpeech
	}
	return text, nil
}

// classifyGeminiError marks quota, overload and transport failures as
// service errors. API errors are judged by their HTTP code; other errors by
// the transport markers in their text.
func classifyGeminiError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500 {
			return fmt.Errorf("%w: gemini: %v", ErrServiceUnavailable, err)
		}
		return fmt.Errorf("gemini: %w", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: gemini: %v", ErrServiceUnavailable, err)
	}
	msg := err.Error()
	for _, marker := range []string{"RESOURCE_EXHAUSTED", "UNAVAILABLE", "connection refused", "connection reset", "no such host", "EOF"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: gemini: %v", ErrServiceUnavailable, err)
		}
	}
	return fmt.Errorf("gemini: %w", err)
}
