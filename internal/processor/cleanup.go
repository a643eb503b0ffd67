package processor

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/nguyentantai21042004/tubescribe/internal/store"
)

// artifactList records every temporary file a run creates. Paths are added
// as soon as they exist so a failure at any later step still leaves a
// complete list.
type artifactList struct {
	mu    sync.Mutex
	paths []string
}

func (a *artifactList) add(path string) {
	if path == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paths = append(a.paths, path)
}

func (a *artifactList) list() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.paths...)
}

// cleanup removes every tracked artifact, then sweeps whatever is left in
// the scratch directories. Failures are warnings; every item is attempted.
func (p *implProcessor) cleanup(ctx context.Context, session *store.Session, artifacts *artifactList) {
	removed := 0
	for _, path := range artifacts.list() {
		if p.cleanupTempFile(ctx, session, path) {
			removed++
		}
	}
	removed += p.sweepScratch(ctx, session)

	p.logger.Info(ctx, "Cleaned up %d temporary files", removed)
	session.Info("Temporary file cleanup completed.")
}

// ClearScratch empties the scratch directories without touching results.
func (p *implProcessor) ClearScratch(ctx context.Context, session *store.Session) {
	removed := p.sweepScratch(ctx, session)
	p.logger.Info(ctx, "Cleared %d leftover scratch files", removed)
}

// sweepScratch deletes the regular files inside each scratch directory.
// The directories themselves are kept.
func (p *implProcessor) sweepScratch(ctx context.Context, session *store.Session) int {
	removed := 0
	for _, dir := range p.opts.ScratchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				p.warn(ctx, session, "Could not list temporary directory %s: %v", dir, err)
			}
			continue
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			if p.cleanupTempFile(ctx, session, filepath.Join(dir, e.Name())) {
				removed++
			}
		}
	}
	return removed
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, session *store.Session, filePath string) bool {
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return false
		}
		p.warn(ctx, session, "Could not remove temporary file %s: %v", filePath, err)
		return false
	}
	p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	return true
}
