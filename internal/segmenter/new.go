package segmenter

import (
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/pkg/executor"
)

// Options configures the ffmpeg based segmenter.
type Options struct {
	FFmpegPath string
	OutputDir  string
	SampleRate int
}

type implSegmenter struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
	newName  func(index int) string
}

// New creates a Segmenter that cuts windows with ffmpeg
func New(opts Options, exec executor.Executor, log logger.Logger) Segmenter {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 16000
	}
	return &implSegmenter{
		opts:     opts,
		executor: exec,
		logger:   log,
		newName:  chunkName,
	}
}
