package orchestration

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/pygym/pygym/internal/logging"
	"github.com/pygym/pygym/internal/metrics"
	"github.com/pygym/pygym/internal/runner"
)

// tracerName identifies this package's spans.
const tracerName = "github.com/pygym/pygym/internal/orchestration"

// Engine executes exercise evaluations in parallel while preserving the
// caller's input order in the returned results.
type Engine struct {
	run     runner.Runner
	workers int
	metrics *metrics.Evaluations
	log     logging.Logger
	tracer  trace.Tracer
}

// NewEngine creates an evaluation engine.
//
// Parameters:
//   - run: The per-exercise runner.
//   - workers: The worker pool bound; must be >= 1.
//   - m: Optional evaluation instrumentation (nil disables it).
//   - log: The logger for per-exercise diagnostics.
//
// Returns:
//   - *Engine: The configured engine.
func NewEngine(run runner.Runner, workers int, m *metrics.Evaluations, log logging.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		run:     run,
		workers: workers,
		metrics: m,
		log:     log,
		tracer:  otel.Tracer(tracerName),
	}
}

// EvaluateAll evaluates every path in parallel, bounded by the worker pool,
// and returns one result per input path in the original input order.
//
// Each evaluation is isolated: a failing, crashing or timed-out exercise is
// captured as a failing Result and never aborts or blocks the others. A
// worker panic is synthesized into a failing result as well, so no input
// silently disappears from the result set.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - paths: The exercise paths in canonical (discovery) order.
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []EvaluationResult: One result per input path, input-ordered.
func (e *Engine) EvaluateAll(ctx context.Context, paths []string, reporter ProgressReporter, out io.Writer) []EvaluationResult {
	ctx, span := e.tracer.Start(ctx, "EvaluateAll",
		trace.WithAttributes(attribute.Int("pygym.batch_size", len(paths))))
	defer span.End()

	results := make([]EvaluationResult, len(paths))
	progressChan := make(chan ProgressUpdate, len(paths)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(paths), out)

	var completed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, p := range paths {
		idx, path := i, p
		g.Go(func() error {
			results[idx] = e.evaluateOne(ctx, path)
			progressChan <- ProgressUpdate{
				Name:      filepath.Base(path),
				Completed: int(completed.Add(1)),
				Total:     len(paths),
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// evaluateOne runs a single evaluation, converting panics into failing
// results and recording instrumentation.
func (e *Engine) evaluateOne(ctx context.Context, path string) (res EvaluationResult) {
	ctx, span := e.tracer.Start(ctx, "Evaluate",
		trace.WithAttributes(attribute.String("pygym.exercise", filepath.Base(path))))
	defer span.End()

	start := time.Now()
	res = EvaluationResult{Path: path}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("evaluation panicked",
				logging.String("exercise", filepath.Base(path)),
				logging.String("panic", fmt.Sprint(r)))
			res.Result = runner.Result{
				Passed: false,
				Stderr: fmt.Sprintf("internal evaluation error: %v", r),
			}
		}
		res.Duration = time.Since(start)
		span.SetAttributes(attribute.Bool("pygym.passed", res.Result.Passed))
		e.metrics.Observe(outcome(res.Result), res.Duration)
	}()

	res.Result = e.run.Run(ctx, path)
	return res
}

// outcome classifies a result for the metrics label.
func outcome(r runner.Result) string {
	switch {
	case r.Passed:
		return metrics.OutcomePassed
	case r.Stderr == runner.TimeoutMessage:
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeFailed
	}
}
