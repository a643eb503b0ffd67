package segmenter

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

var (
	ErrInvalidWindow     = errors.New("window size must be larger than overlap")
	ErrAudioDecodeFailed = errors.New("audio decode failed")
)

// TrackFunc is called with the path of every file the segmenter creates,
// before it moves on to the next one.
type TrackFunc func(path string)

// Segmenter splits an audio asset into overlapping WAV segments.
type Segmenter interface {
	Segment(ctx context.Context, asset model.AudioAsset, windowMs, overlapMs int64, track TrackFunc) ([]model.AudioSegment, error)
}
