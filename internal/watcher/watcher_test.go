package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	writeFile(t, path, "https://youtu.be/a\r\n\n# comment\n  https://youtu.be/b  \n")

	got, err := ReadURLList(path)
	if err != nil {
		t.Fatalf("ReadURLList() error = %v", err)
	}
	want := []string{"https://youtu.be/a", "https://youtu.be/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadURLList() = %v, want %v", got, want)
	}
}

func TestInboxHandler(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr bool
	}{
		{name: "batch succeeds", runErr: nil, wantErr: false},
		{name: "batch fails", runErr: errors.New("recognizer unreachable"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inbox := t.TempDir()
			path := filepath.Join(inbox, "batch.txt")
			writeFile(t, path, "https://youtu.be/a\n")

			var got []string
			handler := NewInboxHandler(func(ctx context.Context, urls []string) error {
				got = urls
				return tt.runErr
			}, logger.NewNop())

			err := handler(context.Background(), path)
			if (err != nil) != tt.wantErr {
				t.Errorf("handler error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != 1 || got[0] != "https://youtu.be/a" {
				t.Errorf("batch urls = %v", got)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("list file should leave the inbox")
			}
			if _, err := os.Stat(filepath.Join(inbox, DoneDir, "batch.txt")); err != nil {
				t.Errorf("list file not in done dir: %v", err)
			}
		})
	}
}

func TestInboxHandlerKeepsInterruptedList(t *testing.T) {
	inbox := t.TempDir()
	path := filepath.Join(inbox, "batch.txt")
	writeFile(t, path, "https://youtu.be/a\n")

	handler := NewInboxHandler(func(ctx context.Context, urls []string) error {
		return context.Canceled
	}, logger.NewNop())

	if err := handler(context.Background(), path); !errors.Is(err, context.Canceled) {
		t.Errorf("handler error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("interrupted list should stay in the inbox: %v", err)
	}
	if _, err := os.Stat(filepath.Join(inbox, DoneDir, "batch.txt")); !os.IsNotExist(err) {
		t.Error("interrupted list should not be in the done dir")
	}
}

func TestPendingLists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "")
	writeFile(t, filepath.Join(dir, "a.TXT"), "")
	writeFile(t, filepath.Join(dir, "notes.md"), "")
	if err := os.Mkdir(filepath.Join(dir, DoneDir), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := pendingLists(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.TXT"), filepath.Join(dir, "b.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pendingLists() = %v, want %v", got, want)
	}
}

func TestStartHandlesPendingLists(t *testing.T) {
	inbox := t.TempDir()
	writeFile(t, filepath.Join(inbox, "first.txt"), "https://youtu.be/a\n")

	handled := make(chan string, 1)
	w, err := New(inbox, func(ctx context.Context, path string) error {
		handled <- filepath.Base(path)
		return nil
	}, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case name := <-handled:
		if name != "first.txt" {
			t.Errorf("handled %s, want first.txt", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pending list was not handled")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
}
