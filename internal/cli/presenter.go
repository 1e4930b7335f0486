package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/pygym/pygym/internal/exercise"
	"github.com/pygym/pygym/internal/orchestration"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps the DisplayProgress function to provide a spinner and
// progress bar during batch evaluations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for a running batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// DisplayCurrent renders the exercise under the cursor: its status, the
// captured output or diagnostic, the hint when visible, and the progress
// count.
//
// Parameters:
//   - out: The writer for the rendered view.
//   - ex: The current exercise; nil renders a no-exercise notice.
//   - showHint: Whether the hint line is visible.
//   - completed: The number of DONE exercises.
//   - total: The total number of exercises.
func DisplayCurrent(out io.Writer, ex *exercise.Exercise, showHint bool, completed, total int) {
	if ex == nil {
		fmt.Fprintln(out, "No exercises found in this workspace.")
		return
	}

	fmt.Fprintf(out, "Current exercise: %s\n\n", ex.Name())
	if ex.Done() {
		fmt.Fprintln(out, "Exercise done ✔")
		if ex.Output != "" {
			fmt.Fprintf(out, "\nOutput:\n%s\n", ex.Output)
		}
		fmt.Fprintln(out, "\nWhen you are done experimenting, move on to the next exercise 🐍")
	} else if ex.Error != "" {
		fmt.Fprintln(out, ex.Error)
	}

	if showHint {
		if ex.Hint != "" {
			fmt.Fprintf(out, "\nHint:\n%s\n", ex.Hint)
		} else {
			fmt.Fprintln(out, "\nNo hint found for the current exercise.")
		}
	}

	fmt.Fprintf(out, "\nProgress: %d/%d\n", completed, total)
}

// DisplayList renders the ordered exercise table with per-exercise status
// and the overall progress count.
//
// Parameters:
//   - out: The writer for the table.
//   - exercises: The ordered exercise collection.
//   - completed: The number of DONE exercises.
func DisplayList(out io.Writer, exercises []*exercise.Exercise, completed int) {
	nameWidth := len("Exercise")
	for _, ex := range exercises {
		if len(ex.Name()) > nameWidth {
			nameWidth = len(ex.Name())
		}
	}

	fmt.Fprintf(out, "%-*s   %s\n", nameWidth, "Exercise", "Status")
	for _, ex := range exercises {
		fmt.Fprintf(out, "%-*s   %s\n", nameWidth, ex.Name(), ex.Status)
	}
	fmt.Fprintf(out, "\nProgress: %d/%d\n", completed, len(exercises))
}

// DisplayFirstRun greets a fresh workspace.
func DisplayFirstRun(out io.Writer) {
	fmt.Fprintln(out, "Welcome to pygym! Solve each exercise so it runs (and its tests pass), then move on.")
}
