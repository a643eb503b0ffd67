package processor

import (
	"github.com/nguyentantai21042004/tubescribe/internal/fetcher"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
	"github.com/nguyentantai21042004/tubescribe/internal/segmenter"
	"github.com/nguyentantai21042004/tubescribe/internal/transcriber"
)

// Options tunes a Processor.
type Options struct {
	Language      string
	MaxConcurrent int
	ScratchDirs   []string
	Progress      ProgressFunc
}

type implProcessor struct {
	fetcher     fetcher.Fetcher
	segmenter   segmenter.Segmenter
	transcriber transcriber.Transcriber
	opts        Options
	logger      logger.Logger
}

// New creates a new Processor instance
func New(f fetcher.Fetcher, s segmenter.Segmenter, t transcriber.Transcriber, opts Options, log logger.Logger) Processor {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Language == "" {
		opts.Language = "pt-BR"
	}
	if opts.Progress == nil {
		opts.Progress = func(model.Progress) {}
	}
	return &implProcessor{
		fetcher:     f,
		segmenter:   s,
		transcriber: t,
		opts:        opts,
		logger:      log,
	}
}
