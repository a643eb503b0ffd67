package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Input bounds for the chunking parameters, in seconds.
const (
	MinChunkSeconds   = 10
	MaxChunkSeconds   = 300
	MinOverlapSeconds = 0
	MaxOverlapSeconds = 30
)

type Config struct {
	Fetcher     FetcherConfig     `yaml:"fetcher"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Server      ServerConfig      `yaml:"server"`
	Export      ExportConfig      `yaml:"export"`
}

type FetcherConfig struct {
	YTDLPPath    string `yaml:"ytdlp_path"`
	FFprobePath  string `yaml:"ffprobe_path"`
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
	CookiesPath  string `yaml:"cookies_path"`
}

type ChunkingConfig struct {
	ChunkSeconds   int    `yaml:"chunk_seconds"`
	OverlapSeconds int    `yaml:"overlap_seconds"`
	FFmpegPath     string `yaml:"ffmpeg_path"`
	SampleRate     int    `yaml:"sample_rate"`
}

type TranscriberConfig struct {
	Backend  string        `yaml:"backend"`
	Language string        `yaml:"language"`
	Retry    RetryConfig   `yaml:"retry"`
	Whisper  WhisperConfig `yaml:"whisper"`
	OpenAI   OpenAIConfig  `yaml:"openai"`
	Gemini   GeminiConfig  `yaml:"gemini"`
}

type RetryConfig struct {
	Attempts       int           `yaml:"attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type WhisperConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type PathsConfig struct {
	Audio  string `yaml:"audio"`
	Chunks string `yaml:"chunks"`
	Output string `yaml:"output"`
	Inbox  string `yaml:"inbox"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"`
}

type ExportConfig struct {
	Formats []string `yaml:"formats"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks required fields and fills defaults for the optional ones.
func (c *Config) Validate() error {
	if c.Paths.Audio == "" {
		return fmt.Errorf("paths.audio is required")
	}
	if c.Paths.Chunks == "" {
		return fmt.Errorf("paths.chunks is required")
	}
	if filepath.Clean(c.Paths.Audio) == filepath.Clean(c.Paths.Chunks) {
		return fmt.Errorf("paths.audio and paths.chunks must differ")
	}

	// An explicit overlap of 0 is valid, so defaults apply only to an
	// absent chunking section.
	if c.Chunking.ChunkSeconds == 0 && c.Chunking.OverlapSeconds == 0 {
		c.Chunking.ChunkSeconds = 60
		c.Chunking.OverlapSeconds = 5
	}
	if err := ValidateChunking(c.Chunking.ChunkSeconds, c.Chunking.OverlapSeconds); err != nil {
		return err
	}

	switch c.Transcriber.Backend {
	case "":
		c.Transcriber.Backend = "whisper"
		fallthrough
	case "whisper":
		if c.Transcriber.Whisper.URL == "" {
			return fmt.Errorf("transcriber.whisper.url is required")
		}
	case "openai":
		if c.Transcriber.OpenAI.APIKey == "" {
			c.Transcriber.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if c.Transcriber.OpenAI.APIKey == "" {
			return fmt.Errorf("transcriber.openai.api_key is required")
		}
	case "gemini":
		if c.Transcriber.Gemini.APIKey == "" {
			c.Transcriber.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
		}
		if c.Transcriber.Gemini.APIKey == "" {
			return fmt.Errorf("transcriber.gemini.api_key is required")
		}
	default:
		return fmt.Errorf("transcriber.backend %q is not supported", c.Transcriber.Backend)
	}

	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if err := c.Paths.validateDurable(); err != nil {
		return err
	}
	if c.Fetcher.YTDLPPath == "" {
		c.Fetcher.YTDLPPath = "yt-dlp"
	}
	if c.Fetcher.FFprobePath == "" {
		c.Fetcher.FFprobePath = "ffprobe"
	}
	if c.Fetcher.AudioFormat == "" {
		c.Fetcher.AudioFormat = "mp3"
	}
	if c.Fetcher.AudioQuality == "" {
		c.Fetcher.AudioQuality = "192K"
	}
	if c.Chunking.FFmpegPath == "" {
		c.Chunking.FFmpegPath = "ffmpeg"
	}
	if c.Chunking.SampleRate == 0 {
		c.Chunking.SampleRate = 16000
	}
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = "pt-BR"
	}
	if c.Transcriber.Retry.Attempts == 0 {
		c.Transcriber.Retry.Attempts = 1
	}
	if c.Transcriber.Retry.InitialBackoff == 0 {
		c.Transcriber.Retry.InitialBackoff = 2 * time.Second
	}
	if c.Transcriber.Retry.MaxBackoff == 0 {
		c.Transcriber.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Transcriber.Whisper.Timeout == 0 {
		c.Transcriber.Whisper.Timeout = 5 * time.Minute
	}
	if c.Transcriber.OpenAI.Model == "" {
		c.Transcriber.OpenAI.Model = "whisper-1"
	}
	if c.Transcriber.Gemini.Model == "" {
		c.Transcriber.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if len(c.Export.Formats) == 0 {
		c.Export.Formats = []string{"txt"}
	}

	return nil
}

// validateDurable rejects output and inbox directories that equal or sit
// inside a scratch directory, since scratch contents are wiped after every
// run.
func (p PathsConfig) validateDurable() error {
	scratch := map[string]string{"paths.audio": p.Audio, "paths.chunks": p.Chunks}
	durable := []struct{ key, dir string }{
		{"paths.output", p.Output},
		{"paths.inbox", p.Inbox},
	}
	for _, d := range durable {
		for key, dir := range scratch {
			inside, err := within(d.dir, dir)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", d.key, err)
			}
			if inside {
				return fmt.Errorf("%s (%s) must not be inside %s (%s)", d.key, d.dir, key, dir)
			}
		}
	}
	return nil
}

// within reports whether path equals dir or is nested below it.
func within(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// ValidateChunking enforces the operator input bounds and that the window
// is strictly larger than the overlap, so the segment cursor always advances.
func ValidateChunking(chunkSeconds, overlapSeconds int) error {
	if chunkSeconds < MinChunkSeconds || chunkSeconds > MaxChunkSeconds {
		return fmt.Errorf("chunking.chunk_seconds must be between %d and %d, got %d", MinChunkSeconds, MaxChunkSeconds, chunkSeconds)
	}
	if overlapSeconds < MinOverlapSeconds || overlapSeconds > MaxOverlapSeconds {
		return fmt.Errorf("chunking.overlap_seconds must be between %d and %d, got %d", MinOverlapSeconds, MaxOverlapSeconds, overlapSeconds)
	}
	if overlapSeconds >= chunkSeconds {
		return fmt.Errorf("chunking.overlap_seconds (%d) must be smaller than chunking.chunk_seconds (%d)", overlapSeconds, chunkSeconds)
	}
	return nil
}

// WindowMs returns the chunk duration in milliseconds.
func (c ChunkingConfig) WindowMs() int64 {
	return int64(c.ChunkSeconds) * 1000
}

// OverlapMs returns the overlap duration in milliseconds.
func (c ChunkingConfig) OverlapMs() int64 {
	return int64(c.OverlapSeconds) * 1000
}
