package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

func (s *implServer) Handler() http.Handler {
	return s.engine.Handler()
}

func (s *implServer) Run(ctx context.Context) error {
	s.baseCtx = ctx

	srv := &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.engine.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	s.logger.Info(ctx, "HTTP API listening on %s", s.opts.Addr)

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error(ctx, "Shutdown error: %v", err)
	}

	s.logger.Info(ctx, "Waiting for the running batch to clean up...")
	s.batches.Wait()
	s.logger.Info(ctx, "HTTP API stopped")
	return nil
}
