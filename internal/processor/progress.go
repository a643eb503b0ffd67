package processor

import (
	"sync"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

// progressTracker turns URL and segment completions into a monotonically
// increasing overall fraction.
type progressTracker struct {
	mu       sync.Mutex
	report   ProgressFunc
	urlCount int
	last     float64
	segDone  int
}

func newProgressTracker(urlCount int, report ProgressFunc) *progressTracker {
	return &progressTracker{report: report, urlCount: urlCount}
}

func (t *progressTracker) urlStarted(index int, url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.segDone = 0
	t.emit(model.Progress{
		URL:      url,
		URLIndex: index,
		URLCount: t.urlCount,
		Overall:  float64(index) / float64(t.urlCount),
		Message:  "processing",
	})
}

func (t *progressTracker) segmentDone(index int, url string, segCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.segDone++
	within := float64(t.segDone) / float64(segCount)
	t.emit(model.Progress{
		URL:          url,
		URLIndex:     index,
		URLCount:     t.urlCount,
		SegmentIndex: t.segDone,
		SegmentCount: segCount,
		Overall:      (float64(index) + within) / float64(t.urlCount),
		Message:      "transcribing",
	})
}

func (t *progressTracker) urlDone(index int, url, state string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emit(model.Progress{
		URL:      url,
		URLIndex: index,
		URLCount: t.urlCount,
		Overall:  float64(index+1) / float64(t.urlCount),
		Message:  state,
		Failed:   model.IsFailure(state),
	})
}

func (t *progressTracker) emit(p model.Progress) {
	if p.Overall < t.last {
		p.Overall = t.last
	}
	if p.Overall > 1 {
		p.Overall = 1
	}
	t.last = p.Overall
	t.report(p)
}
