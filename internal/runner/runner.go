package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pygym/pygym/internal/config"
	"github.com/pygym/pygym/internal/logging"
)

// TimeoutMessage is the fixed diagnostic reported when an exercise or its
// validation run exceeds the wall-clock budget.
const TimeoutMessage = "Exercise timed out."

// Result is the outcome of a single exercise evaluation. Expected failures
// (non-zero exit, timeout, spawn fault, validation failure) are carried as
// data here rather than as raised errors.
type Result struct {
	// Passed reports whether the evaluation succeeded: a zero exit code in
	// direct mode, or validation pass plus direct success in validated mode.
	Passed bool
	// Stdout is the captured standard output of the direct run.
	Stdout string
	// Stderr is the diagnostic text for a failing run.
	Stderr string
}

// ErrorText returns the user-facing diagnostic for a failing result: the
// captured stderr when present, otherwise the captured stdout.
func (r Result) ErrorText() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Runner evaluates a single exercise and reports the outcome as a Result.
// Implementations must be safe for concurrent use: the evaluation engine
// invokes Run from multiple workers.
type Runner interface {
	Run(ctx context.Context, path string) Result
}

// PythonRunner runs Python exercise files as isolated subprocesses, choosing
// between direct execution and pytest-validated execution per exercise.
type PythonRunner struct {
	python   string
	workDir  string
	testsDir string
	timeout  time.Duration
	log      logging.Logger
}

// New creates a PythonRunner from the application configuration.
//
// Parameters:
//   - cfg: The application configuration (interpreter, paths, timeout).
//   - log: The logger for debug diagnostics.
//
// Returns:
//   - *PythonRunner: The configured runner.
func New(cfg config.AppConfig, log logging.Logger) *PythonRunner {
	return &PythonRunner{
		python:   cfg.Python,
		workDir:  cfg.WorkspaceDir,
		testsDir: cfg.TestsDir(),
		timeout:  cfg.Timeout,
		log:      log,
	}
}

// Run evaluates one exercise. When a matching validation test file exists,
// the exercise goes through the test-validated path; otherwise it falls back
// to direct execution and is judged by its own exit code.
//
// Parameters:
//   - ctx: The context bounding the evaluation.
//   - path: The absolute path of the exercise file.
//
// Returns:
//   - Result: The reconciled evaluation outcome.
func (r *PythonRunner) Run(ctx context.Context, path string) Result {
	testPath, ok := r.resolveTestPath(path)
	if !ok {
		r.log.Debug("no validation test, using direct execution", logging.String("exercise", filepath.Base(path)))
		return r.runDirect(ctx, path)
	}
	return r.runValidated(ctx, path, testPath)
}

// resolveTestPath maps an exercise path to its validation test file.
//
// The path segments after the exercises-root segment must contain at least a
// topic and a file name; a single-segment path cannot have a validation test
// and falls back to direct execution. This preserves compatibility with
// exercise sets that predate the validation system.
//
// Parameters:
//   - path: The absolute exercise path.
//
// Returns:
//   - string: The test file path, when one exists on disk.
//   - bool: Whether a validation test was found.
func (r *PythonRunner) resolveTestPath(path string) (string, bool) {
	parts := strings.Split(filepath.ToSlash(path), "/")

	relParts := []string{filepath.Base(path)}
	for i, part := range parts {
		if part == "exercises" {
			relParts = parts[i+1:]
			break
		}
	}

	if len(relParts) < 2 {
		return "", false
	}
	topic := relParts[0]
	testName := "test_" + relParts[len(relParts)-1]
	testPath := filepath.Join(r.testsDir, topic, testName)

	if _, err := os.Stat(testPath); err != nil {
		r.log.Debug("test file not found", logging.String("path", testPath))
		return "", false
	}
	return testPath, true
}

// runDirect spawns the exercise as an isolated process with its working
// directory set to the exercise's own directory, capturing stdout and stderr
// separately under the wall-clock timeout.
func (r *PythonRunner) runDirect(ctx context.Context, path string) Result {
	stdout, stderr, timedOut, err := r.execute(ctx, filepath.Dir(path), r.python, path)

	switch {
	case timedOut:
		// Partial stdout is preserved; the diagnostic is always the fixed
		// timeout message.
		return Result{Passed: false, Stdout: stdout, Stderr: TimeoutMessage}
	case err == nil:
		return Result{Passed: true, Stdout: stdout, Stderr: stderr}
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Passed: false, Stdout: stdout, Stderr: stderr}
		}
		// Spawn or I/O fault: surface the underlying message.
		return Result{Passed: false, Stdout: "", Stderr: err.Error()}
	}
}

// runValidated runs pytest against the resolved test file and, independently,
// the exercise itself. The two outcomes are reconciled in strict precedence:
//
//  1. Validation pass and direct success: passed, direct stdout is the output.
//  2. Direct failure: the student's own error dominates validation feedback.
//  3. Direct success but validation failure: the extracted pytest diagnostic.
func (r *PythonRunner) runValidated(ctx context.Context, path, testPath string) Result {
	testOut, _, timedOut, err := r.execute(ctx, r.workDir,
		r.python, "-m", "pytest", testPath, "-v", "--tb=line", "--no-header")

	if timedOut {
		return Result{Passed: false, Stdout: "", Stderr: TimeoutMessage}
	}
	testsPass := err == nil
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{Passed: false, Stdout: "", Stderr: "Error running tests: " + err.Error()}
		}
	}

	direct := r.runDirect(ctx, path)

	if testsPass && direct.Passed {
		return Result{Passed: true, Stdout: direct.Stdout, Stderr: ""}
	}
	if !direct.Passed {
		return direct
	}
	return Result{Passed: false, Stdout: "", Stderr: ExtractTestError(testOut)}
}

// execute runs a command under the configured timeout, capturing stdout and
// stderr independently. On expiry the process is forcibly terminated.
func (r *PythonRunner) execute(ctx context.Context, dir string, name string, args ...string) (stdout, stderr string, timedOut bool, err error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	timedOut = errors.Is(runCtx.Err(), context.DeadlineExceeded)
	return outBuf.String(), errBuf.String(), timedOut, err
}
