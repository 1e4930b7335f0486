package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/pygym/pygym/internal/runner"
)

// EvaluationResult encapsulates the outcome of a single exercise evaluation
// within a batch. It is the shared domain type between orchestration and
// presentation layers.
type EvaluationResult struct {
	// Path is the absolute exercise path the result belongs to.
	Path string
	// Result is the reconciled execution outcome.
	Result runner.Result
	// Duration is the time taken to complete the evaluation.
	Duration time.Duration
}

// ProgressUpdate reports the completion of one evaluation within a batch.
type ProgressUpdate struct {
	// Name is the file name of the exercise that just finished.
	Name string
	// Completed is the number of evaluations finished so far.
	Completed int
	// Total is the batch size.
	Total int
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// evaluation goroutines when the display is slow to consume updates.
const ProgressBufferMultiplier = 5

// ProgressReporter defines the interface for displaying batch progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinner, counts)
// while the orchestration layer focuses on coordinating evaluations.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving per-exercise completion updates.
	//   - total: The number of exercises in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}
