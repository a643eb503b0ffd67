package server

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

// BatchStatus is the state reported by GET /batches/current.
type BatchStatus struct {
	Running    bool           `json:"running"`
	BatchID    string         `json:"batch_id,omitempty"`
	URLCount   int            `json:"url_count"`
	StartedAt  *time.Time     `json:"started_at,omitempty"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Progress   model.Progress `json:"progress"`
	Error      string         `json:"error,omitempty"`
}

// Tracker keeps the status of the latest batch. Report is meant to be used
// as the processor's progress callback.
type Tracker struct {
	mu     sync.RWMutex
	status BatchStatus
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Report records a progress update.
func (t *Tracker) Report(p model.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Progress = p
}

func (t *Tracker) start(id string, urlCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.status = BatchStatus{
		Running:   true,
		BatchID:   id,
		URLCount:  urlCount,
		StartedAt: &now,
	}
}

func (t *Tracker) finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.status.Running = false
	t.status.FinishedAt = &now
	if err != nil {
		t.status.Error = err.Error()
	}
}

// Status returns a copy of the current status.
func (t *Tracker) Status() BatchStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}
