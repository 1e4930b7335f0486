package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/pygym/pygym/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress
	// display. 200ms keeps the terminal calm on fast batches.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the progress display to be decoupled from a specific spinner
// implementation, facilitating easier testing. It defines the essential
// controls: starting, stopping, and updating the status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner, counter and progress bar while a batch
// evaluation is running. It consumes the progress channel until it is closed
// and signals the WaitGroup on return.
//
// Parameters:
//   - wg: The WaitGroup to signal when the display loop finishes.
//   - progressChan: The channel of per-exercise completion updates.
//   - total: The number of exercises in the batch.
//   - out: The writer for the spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()

	if total == 0 {
		for range progressChan {
		}
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	for update := range progressChan {
		frac := float64(update.Completed) / float64(total)
		sp.UpdateSuffix(fmt.Sprintf(" checking %s [%s] %d/%d",
			update.Name, progressBar(frac, ProgressBarWidth), update.Completed, total))
	}
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
