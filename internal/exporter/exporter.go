package exporter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

const filePrefix = "transcricao_"

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// FileName returns the download name for the transcript of rawURL:
// transcricao_<id>.txt, where id is the v query parameter when present and
// the last path segment otherwise.
func FileName(rawURL string) string {
	return baseName(rawURL) + ".txt"
}

func baseName(rawURL string) string {
	return filePrefix + videoID(rawURL)
}

func videoID(rawURL string) string {
	raw := strings.TrimSpace(rawURL)

	var id string
	if u, err := url.Parse(raw); err == nil {
		if v := u.Query().Get("v"); v != "" {
			id = v
		} else {
			id = path.Base(strings.TrimRight(u.Path, "/"))
		}
	} else if i := strings.Index(raw, "v="); i >= 0 {
		id, _, _ = strings.Cut(raw[i+2:], "&")
	} else {
		id = raw[strings.LastIndex(raw, "/")+1:]
	}

	if id == "." || id == "/" {
		id = ""
	}
	id = reUnsafe.ReplaceAllString(id, "_")
	if id == "" {
		return "video"
	}
	return id
}

// WriteText writes text to dir/FileName(rawURL) and returns the path.
func WriteText(dir, rawURL, text string) (string, error) {
	return writeText(dir, baseName(rawURL), text)
}

func writeText(dir, base, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	out := filepath.Join(dir, base+".txt")
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return out, nil
}

// ExportAll writes every entry of transcript in each of formats. URLs that
// resolve to the same video id get a numeric suffix, in transcript order,
// so no entry overwrites another.
func ExportAll(dir string, transcript model.Transcript, formats []string) ([]string, error) {
	var (
		written []string
		errs    []error
	)
	names := uniqueBaseNames(transcript.Order)
	for _, u := range transcript.Order {
		base, text := names[u], transcript.Texts[u]
		for _, format := range formats {
			var (
				out string
				err error
			)
			switch format {
			case FormatText:
				out, err = writeText(dir, base, text)
			case FormatDocx:
				out, err = writeDocx(dir, base, u, text)
			default:
				err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("export %s as %s: %w", u, format, err))
				continue
			}
			written = append(written, out)
		}
	}
	return written, errors.Join(errs...)
}

// uniqueBaseNames maps each URL to its file base name. The first URL for a
// video id keeps the plain name; later ones get _2, _3 and so on.
func uniqueBaseNames(urls []string) map[string]string {
	names := make(map[string]string, len(urls))
	taken := make(map[string]bool, len(urls))
	for _, u := range urls {
		base := baseName(u)
		candidate := base
		for n := 2; taken[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", base, n)
		}
		taken[candidate] = true
		names[u] = candidate
	}
	return names
}

// Export implements Exporter.
func (e *implExporter) Export(ctx context.Context, transcript model.Transcript) ([]string, error) {
	if transcript.Len() == 0 {
		e.logger.Warn(ctx, "No transcripts to export")
		return nil, nil
	}

	written, err := ExportAll(e.dir, transcript, e.formats)
	for _, out := range written {
		e.logger.Info(ctx, "Transcript saved: %s", out)
	}
	if err != nil {
		e.logger.Error(ctx, "Export failed: %v", err)
	}
	return written, err
}
