package main

import (
	"context"
	"flag"

	"github.com/nguyentantai21042004/tubescribe/internal/watcher"
)

// watchCommand runs a batch for every URL list dropped into the inbox.
func watchCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, *configPath, nil)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	windowMs, overlapMs := a.cfg.Chunking.WindowMs(), a.cfg.Chunking.OverlapMs()
	handler := watcher.NewInboxHandler(func(ctx context.Context, urls []string) error {
		transcript, err := a.processor.Run(ctx, a.session, urls, windowMs, overlapMs)
		if _, exportErr := a.exporter.Export(context.WithoutCancel(ctx), transcript); exportErr != nil && err == nil {
			err = exportErr
		}
		return err
	}, a.logger)

	w, err := watcher.New(a.cfg.Paths.Inbox, handler, a.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "Inbox: %s", a.cfg.Paths.Inbox)
	a.logger.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.logger.Info(ctx, "Press Ctrl+C to stop")

	return w.Start(ctx)
}
