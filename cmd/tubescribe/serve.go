package main

import (
	"context"
	"flag"

	"github.com/nguyentantai21042004/tubescribe/internal/server"
)

// serveCommand exposes the pipeline over HTTP.
func serveCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to the config file")
	addr := fs.String("addr", "", "listen address, overrides the config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tracker := server.NewTracker()
	a, err := newApp(ctx, *configPath, tracker.Report)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	opts := server.Options{
		Addr:           a.cfg.Server.Addr,
		Mode:           a.cfg.Server.Mode,
		ChunkSeconds:   a.cfg.Chunking.ChunkSeconds,
		OverlapSeconds: a.cfg.Chunking.OverlapSeconds,
	}
	if *addr != "" {
		opts.Addr = *addr
	}

	srv := server.New(server.Dependencies{
		Processor: a.processor,
		Session:   a.session,
		Exporter:  a.exporter,
		Tracker:   tracker,
	}, opts, a.logger)

	return srv.Run(ctx)
}
