package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pygym/pygym/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
}

func waitForChange(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("change reported for %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported for %q within timeout", want)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	exercise := filepath.Join(dir, "ex01.py")
	writeFile(t, exercise, "print('hello')\n")

	changes := make(chan string, 8)
	w, err := New(func(path string) { changes <- path }, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Restart(exercise); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}

	writeFile(t, exercise, "print('changed')\n")
	waitForChange(t, changes, exercise)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	exercise := filepath.Join(dir, "ex01.py")
	sibling := filepath.Join(dir, "ex02.py")
	writeFile(t, exercise, "a = 1\n")
	writeFile(t, sibling, "b = 2\n")

	changes := make(chan string, 8)
	w, err := New(func(path string) { changes <- path }, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Restart(exercise); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}

	writeFile(t, sibling, "b = 3\n")

	select {
	case got := <-changes:
		t.Fatalf("unexpected change reported for %q", got)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherRestartMovesTarget(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "ex01.py")
	second := filepath.Join(dir, "ex02.py")
	writeFile(t, first, "a = 1\n")
	writeFile(t, second, "b = 2\n")

	changes := make(chan string, 8)
	w, err := New(func(path string) { changes <- path }, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Restart(first); err != nil {
		t.Fatalf("Restart(first) failed: %v", err)
	}
	if err := w.Restart(second); err != nil {
		t.Fatalf("Restart(second) failed: %v", err)
	}

	writeFile(t, second, "b = 3\n")
	waitForChange(t, changes, second)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := New(func(string) {}, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
