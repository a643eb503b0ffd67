package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
	"github.com/nguyentantai21042004/tubescribe/internal/store"
)

var ErrNoURLs = errors.New("no URLs to process")

// ProgressFunc receives advisory progress updates. It must not block.
type ProgressFunc func(p model.Progress)

// Processor drives a batch of URLs through download, segmentation,
// transcription and join, recording results and logs in a session.
type Processor interface {
	Run(ctx context.Context, session *store.Session, urls []string, windowMs, overlapMs int64) (model.Transcript, error)
	ClearScratch(ctx context.Context, session *store.Session)
}
