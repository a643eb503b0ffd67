package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

// ReadURLList reads a newline separated URL list. Blank lines and lines
// starting with # are skipped.
func ReadURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}

// MarkDone moves a handled list file into the done subdirectory and returns
// its new path. An existing file of the same name is replaced.
func MarkDone(path string) (string, error) {
	doneDir := filepath.Join(filepath.Dir(path), DoneDir)
	if err := os.MkdirAll(doneDir, 0755); err != nil {
		return "", fmt.Errorf("create done dir: %w", err)
	}
	dst := filepath.Join(doneDir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("move list file: %w", err)
	}
	return dst, nil
}

// NewInboxHandler returns an EventHandler that reads the list file, runs a
// batch for it and moves it to the done directory. A batch that fails is
// still moved so it is not picked up again; an interrupted one stays in the
// inbox for the next start.
func NewInboxHandler(run BatchFunc, log logger.Logger) EventHandler {
	return func(ctx context.Context, path string) error {
		urls, err := ReadURLList(path)
		if err != nil {
			return err
		}
		log.Info(ctx, "Starting batch from %s: %d URLs", filepath.Base(path), len(urls))

		runErr := run(ctx, urls)
		if errors.Is(runErr, context.Canceled) {
			log.Warn(ctx, "Batch from %s was interrupted; the list stays in the inbox", filepath.Base(path))
			return fmt.Errorf("run batch: %w", runErr)
		}

		dst, err := MarkDone(path)
		if err != nil {
			log.Warn(ctx, "Could not move %s: %v", path, err)
		} else {
			log.Info(ctx, "List file moved to %s", dst)
		}

		if runErr != nil {
			return fmt.Errorf("run batch: %w", runErr)
		}
		return nil
	}
}
