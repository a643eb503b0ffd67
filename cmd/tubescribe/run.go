package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/tubescribe/internal/config"
	"github.com/nguyentantai21042004/tubescribe/internal/processor"
	"github.com/nguyentantai21042004/tubescribe/internal/store"
	"github.com/nguyentantai21042004/tubescribe/internal/watcher"
)

// runCommand transcribes the URLs given as arguments or in a list file and
// exports the results.
func runCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to the config file")
	chunk := fs.Int("chunk", 0, "chunk duration in seconds (10-300), overrides the config")
	overlap := fs.Int("overlap", -1, "overlap between chunks in seconds (0-30), overrides the config")
	urlsFile := fs.String("urls", "", "file with one URL per line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	urls := fs.Args()
	if *urlsFile != "" {
		listed, err := watcher.ReadURLList(*urlsFile)
		if err != nil {
			return err
		}
		urls = append(urls, listed...)
	}
	urls = processor.NormalizeURLs(urls)
	if len(urls) == 0 {
		return fmt.Errorf("please enter at least one URL")
	}

	a, err := newApp(ctx, *configPath, nil)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	chunkSeconds, overlapSeconds := a.cfg.Chunking.ChunkSeconds, a.cfg.Chunking.OverlapSeconds
	if *chunk != 0 {
		chunkSeconds = *chunk
	}
	if *overlap >= 0 {
		overlapSeconds = *overlap
	}
	if err := config.ValidateChunking(chunkSeconds, overlapSeconds); err != nil {
		return err
	}

	transcript, runErr := a.processor.Run(ctx, a.session, urls, int64(chunkSeconds)*1000, int64(overlapSeconds)*1000)
	if _, err := a.exporter.Export(context.WithoutCancel(ctx), transcript); err != nil && runErr == nil {
		runErr = err
	}
	printSummary(a.session, len(urls))

	if runErr != nil {
		return runErr
	}
	if transcript.Len() == 0 {
		return fmt.Errorf("no transcript could be produced")
	}
	return nil
}

// printSummary writes the warnings and errors of the run to stderr, most
// recent first.
func printSummary(session *store.Session, urlCount int) {
	snap := session.Snapshot()
	fmt.Fprintf(os.Stderr, "\n%d/%d URLs transcribed, %d warnings, %d errors\n",
		snap.Transcript.Len(), urlCount, len(snap.Warnings), len(snap.Errors))
	for _, e := range snap.Warnings {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", e.Text)
	}
	for _, e := range snap.Errors {
		fmt.Fprintf(os.Stderr, "  error:   %s\n", e.Text)
	}
}
