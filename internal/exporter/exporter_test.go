package exporter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "transcricao_dQw4w9WgXcQ.txt"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "transcricao_dQw4w9WgXcQ.txt"},
		{"https://youtu.be/abc-123_X", "transcricao_abc-123_X.txt"},
		{"https://youtu.be/abc?si=tracking", "transcricao_abc.txt"},
		{"https://example.com/videos/talk.mp4", "transcricao_talk_mp4.txt"},
		{"https://example.com/", "transcricao_video.txt"},
		{"  https://youtu.be/trim  ", "transcricao_trim.txt"},
	}

	for _, tt := range tests {
		if got := FileName(tt.url); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestWriteText(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	out, err := WriteText(dir, "https://youtu.be/abc", "olá mundo")
	if err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if filepath.Base(out) != "transcricao_abc.txt" {
		t.Errorf("path = %s", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "olá mundo" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()

	out, err := WriteDocx(dir, "https://youtu.be/abc", "primeira linha\nsegunda linha")
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	if filepath.Base(out) != "transcricao_abc.docx" {
		t.Errorf("path = %s", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// docx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output is not a zip archive")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	tr := model.NewTranscript()
	tr.Set("https://youtu.be/a", "um")
	tr.Set("https://youtu.be/b", "dois")

	e, err := New(dir, []string{FormatText, FormatDocx}, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	written, err := e.Export(context.Background(), tr)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(written) != 4 {
		t.Fatalf("written = %v, want 4 files", written)
	}
	for _, name := range []string{"transcricao_a.txt", "transcricao_a.docx", "transcricao_b.txt", "transcricao_b.docx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(t.TempDir(), []string{"pdf"}, logger.NewNop()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New() error = %v, want ErrUnknownFormat", err)
	}
}

func TestExportAllSameVideoID(t *testing.T) {
	dir := t.TempDir()
	tr := model.NewTranscript()
	tr.Set("https://www.youtube.com/watch?v=X1", "primeira")
	tr.Set("https://youtu.be/X1", "segunda")
	tr.Set("https://youtu.be/X1?t=30", "terceira")

	written, err := ExportAll(dir, tr, []string{FormatText})
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("written = %v, want 3 files", written)
	}

	want := map[string]string{
		"transcricao_X1.txt":   "primeira",
		"transcricao_X1_2.txt": "segunda",
		"transcricao_X1_3.txt": "terceira",
	}
	for name, text := range want {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if string(data) != text {
			t.Errorf("%s = %q, want %q", name, data, text)
		}
	}
}
