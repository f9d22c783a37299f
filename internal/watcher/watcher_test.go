package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/quillpad/internal/logging"
)

func newTestWatcher(t *testing.T, path string) *FileWatcher {
	t.Helper()
	w, err := New(path, WithDelay(20*time.Millisecond), WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{0, "NONE"},
		{OpWrite, "WRITE"},
		{OpCreate | OpWrite, "CREATE|WRITE"},
		{OpRemove | OpRename, "REMOVE|RENAME"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "file.txt"))
	if err != ErrPathNotExist {
		t.Errorf("New error = %v, want ErrPathNotExist", err)
	}
}

func TestNew_FileNeedNotExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.txt")
	w := newTestWatcher(t, path)

	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}
}

func TestFileWatcher_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}
	w := newTestWatcher(t, path)

	if err := os.WriteFile(path, []byte("two"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		if ev.Path != path {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
		if !ev.Op.Has(OpWrite) && !ev.Op.Has(OpCreate) {
			t.Errorf("event op = %s, want WRITE or CREATE", ev.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, filepath.Join(dir, "doc.txt"))

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileWatcher_Suppress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}
	w := newTestWatcher(t, path)

	w.Suppress(time.Second)
	if err := os.WriteFile(path, []byte("own save"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("suppressed write produced %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileWatcher_CloseTwice(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "doc.txt"), WithLogger(logging.Nop()))
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("events channel should be closed")
	}
}
