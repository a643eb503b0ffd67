package watcher

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

// DoneDir is the inbox subdirectory processed list files are moved into.
const DoneDir = "done"

// New creates a Watcher on inboxDir. Batches are handled one at a time.
func New(inboxDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	if err := os.MkdirAll(inboxDir, 0755); err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inboxDir:  inboxDir,
		handler:   handler,
		logger:    log,
		watcher:   watcher,
		semaphore: make(chan struct{}, 1),
		settle:    500 * time.Millisecond,
	}, nil
}
