package fetcher

import (
	"path/filepath"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/pkg/executor"
)

// Options configures the yt-dlp based fetcher.
type Options struct {
	YTDLPPath    string
	FFprobePath  string
	AudioFormat  string
	AudioQuality string
	CookiesPath  string
	OutputDir    string
}

type implFetcher struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
	newName  func() string
}

// New creates a Fetcher backed by yt-dlp and ffprobe
func New(opts Options, exec executor.Executor, log logger.Logger) Fetcher {
	if opts.YTDLPPath == "" {
		opts.YTDLPPath = "yt-dlp"
	}
	if opts.FFprobePath == "" {
		opts.FFprobePath = "ffprobe"
	}
	if opts.AudioFormat == "" {
		opts.AudioFormat = "mp3"
	}
	if opts.AudioQuality == "" {
		opts.AudioQuality = "192K"
	}
	if opts.CookiesPath != "" {
		if abs, err := filepath.Abs(opts.CookiesPath); err == nil {
			opts.CookiesPath = abs
		}
	}
	return &implFetcher{
		opts:     opts,
		executor: exec,
		logger:   log,
		newName:  uniqueName,
	}
}
