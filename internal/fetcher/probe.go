package fetcher

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// probeDuration asks ffprobe for the container duration in milliseconds.
func (f *implFetcher) probeDuration(ctx context.Context, path string) (int64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := f.executor.Execute(ctx, f.opts.FFprobePath, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe %s: %v", ErrAudioDecodeFailed, path, err)
	}

	return parseDurationMs(out)
}

func parseDurationMs(out string) (int64, error) {
	raw := strings.TrimSpace(out)
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unreadable duration %q", ErrAudioDecodeFailed, raw)
	}
	ms := int64(math.Round(seconds * 1000))
	if ms <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: non-positive duration %q", ErrAudioDecodeFailed, raw)
	}
	return ms, nil
}
