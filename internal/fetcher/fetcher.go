package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

// audioExtensions is the closed set the fallback scan accepts.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".opus": true,
	".ogg":  true,
	".webm": true,
	".wav":  true,
}

// Fetch downloads the best audio stream of url, converts it and moves the
// result to a unique name inside the output directory.
func (f *implFetcher) Fetch(ctx context.Context, url string) (model.AudioAsset, error) {
	asset := model.AudioAsset{SourceURL: url, Format: f.opts.AudioFormat}

	if err := os.MkdirAll(f.opts.OutputDir, 0755); err != nil {
		return asset, fmt.Errorf("%w: create audio dir: %v", ErrDownloadFailed, err)
	}

	id, err := f.download(ctx, url)
	if err != nil {
		return asset, err
	}
	asset.ID = id

	found, err := f.locate(id)
	if err != nil {
		return asset, err
	}

	ext := filepath.Ext(found)
	finalPath := filepath.Join(f.opts.OutputDir, f.newName()+ext)
	if err := os.Rename(found, finalPath); err != nil {
		return asset, fmt.Errorf("%w: rename %s: %v", ErrConversionArtifactMissing, found, err)
	}
	asset.Path = finalPath
	asset.Format = strings.TrimPrefix(ext, ".")

	durationMs, err := f.probeDuration(ctx, finalPath)
	if err != nil {
		return asset, err
	}
	asset.DurationMs = durationMs

	f.logger.Info(ctx, "Audio downloaded and converted: %s -> %s (%s)", url, finalPath, model.FormatMs(durationMs))
	return asset, nil
}

// download runs yt-dlp and returns the video id it reports.
func (f *implFetcher) download(ctx context.Context, url string) (string, error) {
	// -f bestaudio/best: best audio-only stream, else best muxed stream
	// -x --audio-format/--audio-quality: ffmpeg post-process to a fixed codec
	// --print after_move:id: emit the id once the final file is in place
	args := []string{
		"-f", "bestaudio/best",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--no-progress",
		"-x",
		"--audio-format", f.opts.AudioFormat,
		"--audio-quality", f.opts.AudioQuality,
		"-o", "%(id)s.%(ext)s",
		"--print", "after_move:id",
		"--no-simulate",
	}
	if strings.TrimSpace(f.opts.CookiesPath) != "" {
		args = append(args, "--cookies", f.opts.CookiesPath)
	}
	args = append(args, url)

	f.logger.Debug(ctx, "yt-dlp %s", strings.Join(args, " "))

	// run inside the audio dir so partial and intermediate files land in
	// scratch space too
	out, err := f.executor.ExecuteInDir(ctx, f.opts.OutputDir, f.opts.YTDLPPath, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDownloadFailed, url, err)
	}

	id := lastLine(out)
	if id == "" {
		return "", fmt.Errorf("%w: %s: yt-dlp reported no video id", ErrDownloadFailed, url)
	}
	return id, nil
}

// locate returns the converted file for id. The expected name is tried
// first; otherwise the directory is scanned in name order for the first
// entry starting with id and carrying a known audio extension.
func (f *implFetcher) locate(id string) (string, error) {
	expected := filepath.Join(f.opts.OutputDir, id+"."+f.opts.AudioFormat)
	if info, err := os.Stat(expected); err == nil && info.Mode().IsRegular() {
		return expected, nil
	}

	entries, err := os.ReadDir(f.opts.OutputDir)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrConversionArtifactMissing, f.opts.OutputDir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, id) && audioExtensions[strings.ToLower(filepath.Ext(name))] {
			return filepath.Join(f.opts.OutputDir, name), nil
		}
	}

	return "", fmt.Errorf("%w: no audio file for id %s in %s", ErrConversionArtifactMissing, id, f.opts.OutputDir)
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func uniqueName() string {
	return uuid.New().String()
}
