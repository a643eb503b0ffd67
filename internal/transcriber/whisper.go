package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

// whisperResponse is the JSON body of whisper-asr-webservice's /asr.
type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// WhisperRecognizer talks to a self-hosted Whisper ASR webservice.
type WhisperRecognizer struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewWhisperRecognizer creates a Whisper client for baseURL
func NewWhisperRecognizer(baseURL string, timeout time.Duration, log logger.Logger) *WhisperRecognizer {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &WhisperRecognizer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

func (w *WhisperRecognizer) Name() string {
	return "whisper"
}

// Recognize posts the WAV buffer as multipart form data.
func (w *WhisperRecognizer) Recognize(ctx context.Context, audio []byte, language string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio_file", "chunk.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	query := url.Values{}
	query.Set("task", "transcribe")
	query.Set("output", "json")
	query.Set("encode", "true")
	if lang := baseLanguage(language); lang != "" {
		query.Set("language", lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/asr?"+query.Encode(), &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrServiceUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: whisper returned status %d: %s", ErrServiceUnavailable, resp.StatusCode, truncate(responseBody))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("whisper returned status %d: %s", resp.StatusCode, truncate(responseBody))
	}

	var transcription whisperResponse
	if err := json.Unmarshal(responseBody, &transcription); err != nil {
		// some deployments ignore output=json and answer with plain text
		w.logger.Debug(ctx, "Whisper response is not JSON, treating as text")
		transcription.Text = string(responseBody)
	}

	text := strings.TrimSpace(transcription.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

func truncate(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
