package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
	"github.com/nguyentantai21042004/tubescribe/internal/segmenter"
	"github.com/nguyentantai21042004/tubescribe/internal/store"
)

// Run processes urls one after another. A failing URL is logged and
// skipped; it never stops the batch. All temporary files are removed before
// Run returns, including when ctx is cancelled mid-run.
func (p *implProcessor) Run(ctx context.Context, session *store.Session, urls []string, windowMs, overlapMs int64) (model.Transcript, error) {
	session.Reset()

	urls = NormalizeURLs(urls)
	if len(urls) == 0 {
		session.Warn("Please enter at least one URL.")
		return model.NewTranscript(), ErrNoURLs
	}
	if overlapMs < 0 || windowMs <= overlapMs {
		return model.NewTranscript(), fmt.Errorf("%w: window %dms, overlap %dms", segmenter.ErrInvalidWindow, windowMs, overlapMs)
	}

	if logger.BatchID(ctx) == "" {
		ctx = logger.WithBatchID(ctx, uuid.New().String()[:8])
	}
	startTime := time.Now()
	artifacts := &artifactList{}
	progress := newProgressTracker(len(urls), p.opts.Progress)
	failed := 0

	// cleanup must run even when ctx is already cancelled
	defer p.cleanup(context.WithoutCancel(ctx), session, artifacts)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting batch: %d URLs, window %s, overlap %s",
		len(urls), model.FormatMs(windowMs), model.FormatMs(overlapMs))
	p.logger.Info(ctx, "========================================")

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			p.fail(ctx, session, "Batch cancelled before processing %s: %v", url, err)
			break
		}

		progress.urlStarted(i, url)
		p.logger.Info(ctx, "Processing URL %d/%d: %s", i+1, len(urls), url)
		state := p.processURL(ctx, session, artifacts, progress, i, url, windowMs, overlapMs)
		if !model.IsTerminal(state) {
			p.logger.Error(ctx, "URL %s stopped in non-terminal state %s", url, state)
		}
		if model.IsFailure(state) {
			failed++
		}
		progress.urlDone(i, url, state)
	}

	result := session.Transcript()
	p.logger.Info(ctx, "Batch finished in %s: %d/%d transcripts, %d failed",
		time.Since(startTime).Round(time.Millisecond), result.Len(), len(urls), failed)
	return result, ctx.Err()
}

// processURL walks one URL through its state machine and returns the
// terminal state.
func (p *implProcessor) processURL(ctx context.Context, session *store.Session, artifacts *artifactList, progress *progressTracker, index int, url string, windowMs, overlapMs int64) string {
	machine := newURLMachine(url, p.logger)
	p.info(ctx, session, "--- Starting processing for: %s ---", url)

	// Step 1: Download and convert
	p.advance(ctx, machine, model.EventFetch)
	asset, err := p.fetcher.Fetch(ctx, url)
	artifacts.add(asset.Path)
	if err != nil {
		p.advance(ctx, machine, model.EventFetchFail)
		p.fail(ctx, session, "Audio download failed for %s: %v", url, err)
		return machine.Current()
	}
	p.advance(ctx, machine, model.EventFetchOK)
	p.info(ctx, session, "Audio downloaded and converted to %s: %s", strings.ToUpper(asset.Format), asset.Path)

	// Step 2: Split into overlapping chunks
	p.advance(ctx, machine, model.EventSegment)
	segments, err := p.segmenter.Segment(ctx, asset, windowMs, overlapMs, artifacts.add)
	if err == nil && len(segments) == 0 {
		err = fmt.Errorf("%w: no chunks produced", segmenter.ErrAudioDecodeFailed)
	}
	if err != nil {
		p.advance(ctx, machine, model.EventSegmentFail)
		p.fail(ctx, session, "Could not split the audio of %s: %v", url, err)
		return machine.Current()
	}
	p.advance(ctx, machine, model.EventSegmentOK)
	p.info(ctx, session, "Total of %d chunks to transcribe from %s.", len(segments), url)

	// Step 3: Transcribe every chunk
	p.advance(ctx, machine, model.EventTranscribe)
	outcomes := p.transcribeAll(ctx, session, progress, index, url, segments)

	// Step 4: Join in chunk order
	text, ok := model.JoinOutcomes(outcomes)
	if !ok {
		p.advance(ctx, machine, model.EventNoTranscript)
		p.fail(ctx, session, "No transcript could be produced for %s.", url)
		return machine.Current()
	}
	session.SetTranscript(url, text)
	p.advance(ctx, machine, model.EventJoin)
	p.info(ctx, session, "Final transcript for %s completed.", url)
	return machine.Current()
}

// transcribeAll returns one outcome per segment, indexed like segments.
// With MaxConcurrent 1 the calls are strictly sequential.
func (p *implProcessor) transcribeAll(ctx context.Context, session *store.Session, progress *progressTracker, index int, url string, segments []model.AudioSegment) []model.Outcome {
	outcomes := make([]model.Outcome, len(segments))

	if p.opts.MaxConcurrent <= 1 {
		for j, seg := range segments {
			if err := ctx.Err(); err != nil {
				outcomes[j] = model.UnknownError(err)
				continue
			}
			outcomes[j] = p.transcribeOne(ctx, session, url, seg)
			progress.segmentDone(index, url, len(segments))
		}
		return outcomes
	}

	sem := newSemaphore(p.opts.MaxConcurrent)
	var wg sync.WaitGroup
	for j, seg := range segments {
		if err := sem.acquire(ctx); err != nil {
			outcomes[j] = model.UnknownError(err)
			continue
		}
		wg.Add(1)
		go func(j int, seg model.AudioSegment) {
			defer wg.Done()
			defer sem.release()

			outcomes[j] = p.transcribeOne(ctx, session, url, seg)
			progress.segmentDone(index, url, len(segments))
		}(j, seg)
	}
	wg.Wait()

	return outcomes
}

// transcribeOne calls the transcriber and logs the outcome on the channel
// matching its kind.
func (p *implProcessor) transcribeOne(ctx context.Context, session *store.Session, url string, seg model.AudioSegment) model.Outcome {
	name := filepath.Base(seg.Path)
	p.logger.Debug(ctx, "Transcribing %s of %s (%s of audio)", seg, url, model.FormatMs(seg.Length()))
	outcome := p.transcriber.Transcribe(ctx, seg, p.opts.Language)

	switch outcome.Kind {
	case model.OutcomeSuccess:
		p.info(ctx, session, "Transcription of chunk %s (%s): success", name, url)
	case model.OutcomeNoSpeech:
		p.warn(ctx, session, "Speech recognition could not understand the audio of chunk %s (%s)", name, url)
	case model.OutcomeServiceError:
		p.fail(ctx, session, "Could not request results from the speech recognition service for chunk %s (%s): %s", name, url, outcome.Message())
	default:
		p.fail(ctx, session, "Unknown error transcribing chunk %s (%s): %s", name, url, outcome.Message())
	}
	return outcome
}

func (p *implProcessor) info(ctx context.Context, session *store.Session, format string, args ...interface{}) {
	session.Info(format, args...)
	p.logger.Info(ctx, format, args...)
}

func (p *implProcessor) warn(ctx context.Context, session *store.Session, format string, args ...interface{}) {
	session.Warn(format, args...)
	p.logger.Warn(ctx, format, args...)
}

func (p *implProcessor) fail(ctx context.Context, session *store.Session, format string, args ...interface{}) {
	session.Error(format, args...)
	p.logger.Error(ctx, format, args...)
}

// NormalizeURLs trims every entry and drops blank ones.
func NormalizeURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// ParseURLList splits newline separated input into URLs.
func ParseURLList(input string) []string {
	return NormalizeURLs(strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n"))
}
