package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/pygym/pygym/internal/exercise"
	"github.com/pygym/pygym/internal/orchestration"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan orchestration.ProgressUpdate)

	go func() {
		progressChan <- orchestration.ProgressUpdate{Name: "intro1.py", Completed: 1, Total: 2}
		progressChan <- orchestration.ProgressUpdate{Name: "vars1.py", Completed: 2, Total: 2}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, io.Discard)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if !strings.Contains(mockS.suffix, "vars1.py") || !strings.Contains(mockS.suffix, "2/2") {
		t.Errorf("final suffix = %q, want last exercise and count", mockS.suffix)
	}
}

func TestDisplayProgress_EmptyBatch(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
	// Should return immediately without starting a spinner.
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		progress float64
		filled   int
	}{
		{"Empty", 0.0, 0},
		{"Half", 0.5, 5},
		{"Full", 1.0, 10},
		{"Clamped above", 1.7, 10},
		{"Clamped below", -0.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := progressBar(tt.progress, 10)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("progressBar(%v) filled = %d, want %d", tt.progress, got, tt.filled)
			}
			if got := len([]rune(bar)); got != 10 {
				t.Errorf("progressBar length = %d, want 10", got)
			}
		})
	}
}

func TestDisplayCurrent(t *testing.T) {
	t.Parallel()

	t.Run("done exercise shows output", func(t *testing.T) {
		var buf bytes.Buffer
		ex := &exercise.Exercise{
			Path:   "/ws/exercises/00_intro/intro1.py",
			Status: exercise.StatusDone,
			Output: "Hello, pygym!",
		}
		DisplayCurrent(&buf, ex, false, 1, 3)
		for _, want := range []string{"intro1.py", "Exercise done", "Hello, pygym!", "Progress: 1/3"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("output missing %q:\n%s", want, buf.String())
			}
		}
	})

	t.Run("pending exercise shows diagnostic and hint", func(t *testing.T) {
		var buf bytes.Buffer
		ex := &exercise.Exercise{
			Path:   "/ws/exercises/00_intro/intro1.py",
			Status: exercise.StatusPending,
			Error:  "NameError: name 'x' is not defined",
			Hint:   "Assign x before printing it.",
		}
		DisplayCurrent(&buf, ex, true, 0, 3)
		for _, want := range []string{"NameError", "Hint:", "Assign x"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("output missing %q:\n%s", want, buf.String())
			}
		}
	})

	t.Run("hint requested but absent", func(t *testing.T) {
		var buf bytes.Buffer
		ex := &exercise.Exercise{Path: "/ws/exercises/00_intro/intro1.py", Status: exercise.StatusPending}
		DisplayCurrent(&buf, ex, true, 0, 1)
		if !strings.Contains(buf.String(), "No hint found") {
			t.Errorf("missing no-hint notice:\n%s", buf.String())
		}
	})

	t.Run("nil exercise", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayCurrent(&buf, nil, false, 0, 0)
		if !strings.Contains(buf.String(), "No exercises found") {
			t.Errorf("missing empty-workspace notice:\n%s", buf.String())
		}
	})
}

func TestDisplayList(t *testing.T) {
	t.Parallel()
	exercises := []*exercise.Exercise{
		{Path: "/ws/exercises/00_intro/intro1.py", Status: exercise.StatusDone},
		{Path: "/ws/exercises/01_vars/vars1.py", Status: exercise.StatusPending},
	}

	var buf bytes.Buffer
	DisplayList(&buf, exercises, 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.Contains(lines[0], "Exercise") || !strings.Contains(lines[0], "Status") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(buf.String(), "intro1.py") || !strings.Contains(buf.String(), "DONE") {
		t.Errorf("missing done row:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Progress: 1/2") {
		t.Errorf("missing progress line:\n%s", buf.String())
	}
}
