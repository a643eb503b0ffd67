package watcher

import "context"

// Watcher defines the interface for inbox monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles one URL list file
type EventHandler func(ctx context.Context, filePath string) error

// BatchFunc runs a batch for the URLs of one list file.
type BatchFunc func(ctx context.Context, urls []string) error
