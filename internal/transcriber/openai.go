package transcriber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIRecognizer uses the OpenAI audio transcription endpoint.
type OpenAIRecognizer struct {
	client openai.Client
	model  string
}

// NewOpenAIRecognizer creates an OpenAI backed recognizer. Retries are
// handled by the transcriber, so the SDK's own retry loop is disabled.
func NewOpenAIRecognizer(apiKey, model, baseURL string) *OpenAIRecognizer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	return &OpenAIRecognizer{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *OpenAIRecognizer) Name() string {
	return "openai"
}

func (o *OpenAIRecognizer) Recognize(ctx context.Context, audio []byte, language string) (string, error) {
	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), "chunk.wav", "audio/wav"),
		Model: openai.AudioModel(o.model),
	}
	if lang := baseLanguage(language); lang != "" {
		params.Language = openai.String(lang)
	}

	resp, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

func classifyOpenAIError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500 {
			return fmt.Errorf("%w: openai status %d: %v", ErrServiceUnavailable, apiErr.StatusCode, err)
		}
		return fmt.Errorf("openai status %d: %w", apiErr.StatusCode, err)
	}
	// no API error body means the request never completed
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}
