package server

import (
	"context"
	"net/http"
)

// Server exposes batch control, transcripts and logs over HTTP.
type Server interface {
	// Run serves until ctx is cancelled, then shuts down and waits for a
	// running batch to finish its cleanup.
	Run(ctx context.Context) error
	Handler() http.Handler
}
