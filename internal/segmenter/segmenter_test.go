package segmenter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

type fakeFFmpeg struct {
	failOn int
	calls  int
	args   [][]string
}

func (f *fakeFFmpeg) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.args = append(f.args, args)
	call := f.calls
	f.calls++
	if call == f.failOn {
		return "", errors.New("Invalid data found when processing input")
	}
	dst := args[len(args)-1]
	return "", os.WriteFile(dst, []byte("RIFF"), 0644)
}

func (f *fakeFFmpeg) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeFFmpeg) LookPath(name string) (string, error) {
	return name, nil
}

func testAsset(t *testing.T, durationMs int64) model.AudioAsset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}
	return model.AudioAsset{SourceURL: "https://youtu.be/x", Path: path, DurationMs: durationMs, Format: "mp3"}
}

func newTestSegmenter(dir string, exec *fakeFFmpeg) *implSegmenter {
	s := New(Options{OutputDir: dir}, exec, logger.NewNop()).(*implSegmenter)
	s.newName = func(index int) string { return fmt.Sprintf("chunk_test_%d.wav", index) }
	return s
}

func TestSegment(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeFFmpeg{failOn: -1}
	asset := testAsset(t, 130000)

	var tracked []string
	segments, err := newTestSegmenter(dir, exec).Segment(context.Background(), asset, 60000, 5000, func(p string) {
		tracked = append(tracked, p)
	})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	if len(segments) != 3 || len(tracked) != 3 {
		t.Fatalf("segments = %d, tracked = %d, want 3/3", len(segments), len(tracked))
	}
	for i, seg := range segments {
		if seg.Index != i || seg.AssetPath != asset.Path || seg.Path != tracked[i] {
			t.Errorf("segment %d = %+v", i, seg)
		}
		if _, err := os.Stat(seg.Path); err != nil {
			t.Errorf("segment file missing: %v", err)
		}
	}

	// third window starts at 110s and lasts 20s
	last := exec.args[2]
	if last[4] != "110.000" || last[8] != "20.000" {
		t.Errorf("ffmpeg args = %v", last)
	}
	if _, err := os.Stat(asset.Path); err != nil {
		t.Error("source asset must not be deleted")
	}
}

func TestSegmentFailureTracksPartialWork(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeFFmpeg{failOn: 1}
	asset := testAsset(t, 130000)

	var tracked []string
	segments, err := newTestSegmenter(dir, exec).Segment(context.Background(), asset, 60000, 5000, func(p string) {
		tracked = append(tracked, p)
	})
	if !errors.Is(err, ErrAudioDecodeFailed) {
		t.Fatalf("error = %v, want ErrAudioDecodeFailed", err)
	}
	if len(segments) != 1 {
		t.Errorf("segments = %d, want 1", len(segments))
	}
	if len(tracked) != 2 {
		t.Errorf("tracked = %v, the failing chunk path must be tracked too", tracked)
	}
}

func TestSegmentMissingAsset(t *testing.T) {
	exec := &fakeFFmpeg{failOn: -1}
	asset := model.AudioAsset{Path: filepath.Join(t.TempDir(), "missing.mp3"), DurationMs: 1000}

	_, err := newTestSegmenter(t.TempDir(), exec).Segment(context.Background(), asset, 60000, 5000, nil)
	if !errors.Is(err, ErrAudioDecodeFailed) {
		t.Errorf("error = %v, want ErrAudioDecodeFailed", err)
	}
	if exec.calls != 0 {
		t.Errorf("ffmpeg calls = %d, want 0", exec.calls)
	}
}

func TestSegmentInvalidWindow(t *testing.T) {
	exec := &fakeFFmpeg{failOn: -1}
	_, err := newTestSegmenter(t.TempDir(), exec).Segment(context.Background(), testAsset(t, 1000), 5000, 5000, nil)
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("error = %v, want ErrInvalidWindow", err)
	}
}

func TestSegmentCancelled(t *testing.T) {
	exec := &fakeFFmpeg{failOn: -1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	segments, err := newTestSegmenter(t.TempDir(), exec).Segment(ctx, testAsset(t, 130000), 60000, 5000, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(segments) != 0 {
		t.Errorf("segments = %d, want 0", len(segments))
	}
}
