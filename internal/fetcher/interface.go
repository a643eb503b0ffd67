package fetcher

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

var (
	ErrDownloadFailed            = errors.New("download failed")
	ErrConversionArtifactMissing = errors.New("converted audio file not found")
	ErrAudioDecodeFailed         = errors.New("audio decode failed")
)

// Fetcher downloads the audio of a video URL into a uniquely named file.
//
// On error the returned asset's Path, when non-empty, names a file that was
// created and is now owned by the caller.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (model.AudioAsset, error)
}
