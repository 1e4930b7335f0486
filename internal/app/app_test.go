package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/pygym/pygym/internal/errors"
	"github.com/pygym/pygym/internal/runner"
)

// passRunner reports every exercise as passing.
type passRunner struct{}

func (passRunner) Run(_ context.Context, path string) runner.Result {
	return runner.Result{Passed: true, Stdout: "ok: " + filepath.Base(path)}
}

// failRunner reports every exercise as failing.
type failRunner struct{}

func (failRunner) Run(context.Context, string) runner.Result {
	return runner.Result{Passed: false, Stderr: "SyntaxError: invalid syntax"}
}

func newWorkspace(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()
	for _, rel := range []string{"00_intro/intro1.py", "01_vars/vars1.py"} {
		p := filepath.Join(ws, "exercises", filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := os.WriteFile(p, []byte("print('hi')\n"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	return ws
}

func TestNewRejectsInvalidFlags(t *testing.T) {
	var errBuf bytes.Buffer
	if _, err := New([]string{"pygym", "-workers", "-3"}, &errBuf); err == nil {
		t.Error("expected error for negative workers")
	}
}

func TestNewHelpFlag(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"pygym", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Fatalf("got %v, want help error", err)
	}
	if !strings.Contains(errBuf.String(), "Usage:") {
		t.Errorf("usage text missing:\n%s", errBuf.String())
	}
}

func TestRunDefaultModeShowsCurrentExercise(t *testing.T) {
	ws := newWorkspace(t)
	var out, errBuf bytes.Buffer

	a, err := New([]string{"pygym", "-workspace", ws, "-q"}, &errBuf, WithRunner(passRunner{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want success; stderr:\n%s", code, errBuf.String())
	}
	for _, want := range []string{"Current exercise: intro1.py", "Progress: 2/2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunListMode(t *testing.T) {
	ws := newWorkspace(t)
	var out, errBuf bytes.Buffer

	a, err := New([]string{"pygym", "-workspace", ws, "-q", "-list"}, &errBuf, WithRunner(failRunner{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want success", code)
	}
	for _, want := range []string{"intro1.py", "vars1.py", "PENDING", "Progress: 0/2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunSingleExerciseMode(t *testing.T) {
	ws := newWorkspace(t)

	t.Run("passing exercise exits zero", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		a, err := New([]string{"pygym", "-workspace", ws, "-q", "-run", "00_intro/intro1.py"}, &errBuf, WithRunner(passRunner{}))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Errorf("exit code = %d, want success", code)
		}
		if !strings.Contains(out.String(), "ok: intro1.py") {
			t.Errorf("missing exercise stdout:\n%s", out.String())
		}
	})

	t.Run("failing exercise exits non-zero", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		a, err := New([]string{"pygym", "-workspace", ws, "-q", "-run", "00_intro/intro1.py"}, &errBuf, WithRunner(failRunner{}))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorGeneric {
			t.Errorf("exit code = %d, want generic error", code)
		}
		if !strings.Contains(out.String(), "SyntaxError") {
			t.Errorf("missing diagnostic:\n%s", out.String())
		}
	})

	t.Run("unknown exercise reports resolution error", func(t *testing.T) {
		var out, errBuf bytes.Buffer
		a, err := New([]string{"pygym", "-workspace", ws, "-q", "-run", "99_ghost/ghost.py"}, &errBuf, WithRunner(passRunner{}))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorGeneric {
			t.Errorf("exit code = %d, want generic error", code)
		}
		if !strings.Contains(errBuf.String(), "cannot resolve exercise path") {
			t.Errorf("missing resolution error:\n%s", errBuf.String())
		}
	})
}

func TestRunFirstRunGreeting(t *testing.T) {
	ws := newWorkspace(t)
	var out, errBuf bytes.Buffer

	a, err := New([]string{"pygym", "-workspace", ws, "-q"}, &errBuf, WithRunner(passRunner{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a.Run(context.Background(), &out)
	if !strings.Contains(out.String(), "Welcome to pygym!") {
		t.Errorf("missing first-run greeting:\n%s", out.String())
	}

	// Second run against the same workspace must not greet again.
	out.Reset()
	b, err := New([]string{"pygym", "-workspace", ws, "-q"}, &errBuf, WithRunner(passRunner{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Run(context.Background(), &out)
	if strings.Contains(out.String(), "Welcome to pygym!") {
		t.Errorf("greeting repeated on second run:\n%s", out.String())
	}
}

func TestVersionHelpers(t *testing.T) {
	t.Parallel()
	if !HasVersionFlag([]string{"--version"}) || !HasVersionFlag([]string{"-version"}) {
		t.Error("version flags not recognized")
	}
	if HasVersionFlag([]string{"-v"}) {
		t.Error("-v is the verbose shorthand, not a version flag")
	}

	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), "pygym version") {
		t.Errorf("version banner = %q", buf.String())
	}
}
