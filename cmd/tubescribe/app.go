package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/tubescribe/internal/config"
	"github.com/nguyentantai21042004/tubescribe/internal/exporter"
	"github.com/nguyentantai21042004/tubescribe/internal/fetcher"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
	"github.com/nguyentantai21042004/tubescribe/internal/processor"
	"github.com/nguyentantai21042004/tubescribe/internal/segmenter"
	"github.com/nguyentantai21042004/tubescribe/internal/store"
	"github.com/nguyentantai21042004/tubescribe/internal/transcriber"
	"github.com/nguyentantai21042004/tubescribe/pkg/executor"
)

// app holds the wired components shared by every command.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	session   *store.Session
	processor processor.Processor
	exporter  exporter.Exporter
}

// newApp loads the configuration and wires the pipeline. A nil progress
// reports through the logger.
func newApp(ctx context.Context, configPath string, progress processor.ProgressFunc) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "tubescribe: video to text")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Transcriber backend: %s (%s)", cfg.Transcriber.Backend, cfg.Transcriber.Language)
	log.Info(ctx, "Max concurrent chunks: %d", cfg.Performance.MaxConcurrent)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()
	for _, tool := range []string{cfg.Fetcher.YTDLPPath, cfg.Fetcher.FFprobePath, cfg.Chunking.FFmpegPath} {
		if _, err := exec.LookPath(tool); err != nil {
			log.Warn(ctx, "%s not found in PATH: %v", tool, err)
		}
	}

	rec, err := transcriber.NewRecognizer(ctx, cfg.Transcriber, log)
	if err != nil {
		return nil, fmt.Errorf("create recognizer: %w", err)
	}

	f := fetcher.New(fetcher.Options{
		YTDLPPath:    cfg.Fetcher.YTDLPPath,
		FFprobePath:  cfg.Fetcher.FFprobePath,
		AudioFormat:  cfg.Fetcher.AudioFormat,
		AudioQuality: cfg.Fetcher.AudioQuality,
		CookiesPath:  cfg.Fetcher.CookiesPath,
		OutputDir:    cfg.Paths.Audio,
	}, exec, log)

	s := segmenter.New(segmenter.Options{
		FFmpegPath: cfg.Chunking.FFmpegPath,
		OutputDir:  cfg.Paths.Chunks,
		SampleRate: cfg.Chunking.SampleRate,
	}, exec, log)

	t := transcriber.New(rec, transcriber.RetryPolicy{
		Attempts:       cfg.Transcriber.Retry.Attempts,
		InitialBackoff: cfg.Transcriber.Retry.InitialBackoff,
		MaxBackoff:     cfg.Transcriber.Retry.MaxBackoff,
	}, log)

	if progress == nil {
		progress = logProgress(ctx, log)
	}

	proc := processor.New(f, s, t, processor.Options{
		Language:      cfg.Transcriber.Language,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		ScratchDirs:   []string{cfg.Paths.Audio, cfg.Paths.Chunks},
		Progress:      progress,
	}, log)

	exp, err := exporter.New(cfg.Paths.Output, cfg.Export.Formats, log)
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    log,
		session:   store.New(),
		processor: proc,
		exporter:  exp,
	}, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Audio,
		cfg.Paths.Chunks,
		cfg.Paths.Output,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

// logProgress is the progress callback for the terminal commands.
func logProgress(ctx context.Context, log logger.Logger) processor.ProgressFunc {
	return func(p model.Progress) {
		if p.SegmentCount > 0 {
			log.Info(ctx, "Progress %3.0f%%: URL %d/%d, chunk %d/%d", p.Overall*100, p.URLIndex+1, p.URLCount, p.SegmentIndex, p.SegmentCount)
			return
		}
		log.Info(ctx, "Progress %3.0f%%: URL %d/%d %s", p.Overall*100, p.URLIndex+1, p.URLCount, p.Message)
	}
}
