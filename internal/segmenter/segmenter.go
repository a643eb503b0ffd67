package segmenter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

// Segment plans the windows for asset and extracts each one to its own
// 16-bit PCM mono WAV. On failure the segments extracted so far are
// returned with the error; every created path has already been passed to
// track.
func (s *implSegmenter) Segment(ctx context.Context, asset model.AudioAsset, windowMs, overlapMs int64, track TrackFunc) ([]model.AudioSegment, error) {
	windows, err := Plan(asset.DurationMs, windowMs, overlapMs)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(asset.Path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioDecodeFailed, err)
	}

	if err := os.MkdirAll(s.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create chunk dir: %w", err)
	}

	segments := make([]model.AudioSegment, 0, len(windows))
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return segments, err
		}

		path := filepath.Join(s.opts.OutputDir, s.newName(w.Index))
		if track != nil {
			track(path)
		}

		if err := s.extract(ctx, asset.Path, path, w); err != nil {
			return segments, fmt.Errorf("%w: chunk %d of %s: %v", ErrAudioDecodeFailed, w.Index, asset.Path, err)
		}

		seg := model.AudioSegment{
			AssetPath: asset.Path,
			Index:     w.Index,
			StartMs:   w.StartMs,
			EndMs:     w.EndMs,
			Path:      path,
		}
		segments = append(segments, seg)
		s.logger.Debug(ctx, "Chunk %d created: %s (%s)", w.Index+1, path, seg)
	}

	return segments, nil
}

// extract cuts one window out of the source audio.
func (s *implSegmenter) extract(ctx context.Context, src, dst string, w Window) error {
	// -ss before -i: fast input seek
	// -t: window length, never past the end of the source
	// -ac 1 -ar N -c:a pcm_s16le: lossless mono WAV for the recogniser
	args := []string{
		"-v", "error",
		"-y",
		"-ss", msToSeconds(w.StartMs),
		"-i", src,
		"-t", msToSeconds(w.EndMs - w.StartMs),
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(s.opts.SampleRate),
		"-c:a", "pcm_s16le",
		dst,
	}

	if _, err := s.executor.Execute(ctx, s.opts.FFmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract chunk: %w", err)
	}
	return nil
}

func msToSeconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}

func chunkName(index int) string {
	return fmt.Sprintf("chunk_%s_%d.wav", uuid.New().String(), index)
}
