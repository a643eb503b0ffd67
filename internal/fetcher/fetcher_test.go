package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

type fakeExecutor struct {
	download func(args []string) (string, error)
	probe    func(path string) (string, error)
	calls    []string
	dirs     []string
}

func (e *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	e.calls = append(e.calls, name)
	switch name {
	case "yt-dlp":
		return e.download(args)
	case "ffprobe":
		return e.probe(args[len(args)-1])
	}
	return "", errors.New("unexpected command " + name)
}

func (e *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	e.dirs = append(e.dirs, dir)
	return e.Execute(ctx, name, args...)
}

func (e *fakeExecutor) LookPath(name string) (string, error) {
	return name, nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestFetcher(dir string, exec *fakeExecutor) *implFetcher {
	f := New(Options{OutputDir: dir}, exec, logger.NewNop()).(*implFetcher)
	f.newName = func() string { return "unique" }
	return f
}

func TestFetchExpectedPath(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{
		download: func(args []string) (string, error) {
			writeFile(t, filepath.Join(dir, "dQw4w9WgXcQ.mp3"))
			return "dQw4w9WgXcQ\n", nil
		},
		probe: func(path string) (string, error) { return "130.000000\n", nil },
	}

	asset, err := newTestFetcher(dir, exec).Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if asset.Path != filepath.Join(dir, "unique.mp3") {
		t.Errorf("Path = %s", asset.Path)
	}
	if asset.DurationMs != 130000 {
		t.Errorf("DurationMs = %d, want 130000", asset.DurationMs)
	}
	if asset.ID != "dQw4w9WgXcQ" {
		t.Errorf("ID = %s", asset.ID)
	}
	if _, err := os.Stat(filepath.Join(dir, "dQw4w9WgXcQ.mp3")); !os.IsNotExist(err) {
		t.Error("original download name should be gone after rename")
	}
	if len(exec.dirs) != 1 || exec.dirs[0] != dir {
		t.Errorf("yt-dlp working dirs = %v, want [%s]", exec.dirs, dir)
	}
}

func TestFetchDownloadArgs(t *testing.T) {
	dir := t.TempDir()
	var got []string
	exec := &fakeExecutor{
		download: func(args []string) (string, error) {
			got = args
			writeFile(t, filepath.Join(dir, "abc.mp3"))
			return "abc", nil
		},
		probe: func(path string) (string, error) { return "10", nil },
	}
	f := New(Options{OutputDir: dir, CookiesPath: "cookies.txt"}, exec, logger.NewNop()).(*implFetcher)

	if _, err := f.Fetch(context.Background(), "https://youtu.be/abc"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := map[string]string{"-o": "%(id)s.%(ext)s", "--audio-format": "mp3", "--print": "after_move:id"}
	for i := 0; i < len(got)-1; i++ {
		if v, ok := want[got[i]]; ok && got[i+1] != v {
			t.Errorf("%s = %q, want %q", got[i], got[i+1], v)
		}
		if got[i] == "--cookies" && !filepath.IsAbs(got[i+1]) {
			t.Errorf("--cookies = %q, want an absolute path", got[i+1])
		}
	}
	if got[len(got)-1] != "https://youtu.be/abc" {
		t.Errorf("last arg = %q, want the url", got[len(got)-1])
	}
}

func TestFetchFallbackScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "other.mp3"))
	exec := &fakeExecutor{
		download: func(args []string) (string, error) {
			writeFile(t, filepath.Join(dir, "abc123.txt"))
			writeFile(t, filepath.Join(dir, "abc123.f251.m4a"))
			return "abc123", nil
		},
		probe: func(path string) (string, error) { return "61.2", nil },
	}

	asset, err := newTestFetcher(dir, exec).Fetch(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if asset.Path != filepath.Join(dir, "unique.m4a") {
		t.Errorf("Path = %s, want adopted m4a", asset.Path)
	}
	if asset.Format != "m4a" {
		t.Errorf("Format = %s", asset.Format)
	}
	if _, err := os.Stat(filepath.Join(dir, "other.mp3")); err != nil {
		t.Error("unrelated file should be untouched")
	}
}

func TestFetchArtifactMissing(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{
		download: func(args []string) (string, error) {
			writeFile(t, filepath.Join(dir, "zzz.mp3"))
			return "abc123", nil
		},
	}

	asset, err := newTestFetcher(dir, exec).Fetch(context.Background(), "https://youtu.be/abc123")
	if !errors.Is(err, ErrConversionArtifactMissing) {
		t.Fatalf("error = %v, want ErrConversionArtifactMissing", err)
	}
	if asset.Path != "" {
		t.Errorf("Path = %q, want empty on failure", asset.Path)
	}
}

func TestFetchDownloadFailed(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{
		download: func(args []string) (string, error) {
			return "", errors.New("ERROR: Video unavailable")
		},
	}

	_, err := newTestFetcher(dir, exec).Fetch(context.Background(), "https://youtu.be/gone")
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("error = %v, want ErrDownloadFailed", err)
	}
	if len(exec.calls) != 1 {
		t.Errorf("calls = %v, ffprobe should not run", exec.calls)
	}
}

func TestFetchProbeFailureKeepsPath(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{
		download: func(args []string) (string, error) {
			writeFile(t, filepath.Join(dir, "abc.mp3"))
			return "abc", nil
		},
		probe: func(path string) (string, error) { return "N/A", nil },
	}

	asset, err := newTestFetcher(dir, exec).Fetch(context.Background(), "https://youtu.be/abc")
	if !errors.Is(err, ErrAudioDecodeFailed) {
		t.Fatalf("error = %v, want ErrAudioDecodeFailed", err)
	}
	if asset.Path == "" {
		t.Error("Path should name the created file so the caller can clean it up")
	}
}

func TestParseDurationMs(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"130.000000\n", 130000, false},
		{"1.5", 1500, false},
		{"0", 0, true},
		{"", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDurationMs(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseDurationMs(%q) = %d, %v", tt.in, got, err)
		}
	}
}
