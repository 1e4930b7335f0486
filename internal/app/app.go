// Package app wires the application together: configuration, logging,
// metrics, the evaluation engine and the workspace manager, and dispatches
// the selected command-line mode.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pygym/pygym/internal/cli"
	"github.com/pygym/pygym/internal/config"
	apperrors "github.com/pygym/pygym/internal/errors"
	"github.com/pygym/pygym/internal/logging"
	"github.com/pygym/pygym/internal/metrics"
	"github.com/pygym/pygym/internal/orchestration"
	"github.com/pygym/pygym/internal/runner"
	"github.com/pygym/pygym/internal/watcher"
	"github.com/pygym/pygym/internal/workspace"
)

// Application represents the pygym application instance.
type Application struct {
	Config    config.AppConfig
	Runner    runner.Runner
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRunner sets a custom exercise runner, replacing the default
// subprocess-based one. Used by tests.
func WithRunner(r runner.Runner) AppOption {
	return func(a *Application) { a.Runner = r }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full argument vector, including the program name.
//   - errWriter: The writer for usage and error output.
//   - opts: Optional construction overrides.
//
// Returns:
//   - *Application: The configured application.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "pygym"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
//
// Parameters:
//   - ctx: The parent context; SIGINT/SIGTERM cancel it.
//   - out: The writer for user-facing output.
//
// Returns:
//   - int: The process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := logging.NewLogger(a.ErrWriter, "pygym")

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	reg := prometheus.NewRegistry()
	evals := metrics.NewEvaluations(reg)
	if a.Config.MetricsAddr != "" {
		metrics.Serve(a.Config.MetricsAddr, reg, func(err error) {
			log.Error("metrics listener failed", logging.Err(err))
		})
	}

	run := a.Runner
	if run == nil {
		run = runner.New(a.Config, log)
	}
	engine := orchestration.NewEngine(run, a.Config.EffectiveWorkers(), evals, log)

	settings, err := workspace.NewFileSettings(a.Config, log)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error loading workspace state: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	mgr := workspace.NewManager(a.Config, engine, run, settings, log, out)

	// Single-exercise modes resolve and run without evaluating the whole
	// workspace.
	switch {
	case a.Config.RunPath != "":
		return a.exitFor(mgr.RunAndPrint(ctx, out, a.Config.RunPath))
	case a.Config.SolutionPath != "":
		return a.exitFor(mgr.RunSolution(ctx, out, a.Config.SolutionPath))
	case a.Config.ResetPath != "":
		return a.exitFor(mgr.ResetByPath(a.Config.ResetPath))
	}

	reporter := a.reporter()
	if err := mgr.Init(ctx, reporter); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error initializing workspace: %v\n", err)
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}

	if mgr.FirstRun() {
		cli.DisplayFirstRun(out)
	}

	switch {
	case a.Config.List:
		completed, _ := mgr.Progress()
		cli.DisplayList(out, mgr.Exercises(), completed)
	case a.Config.CheckAll:
		mgr.CheckAll(ctx, reporter)
		completed, _ := mgr.Progress()
		cli.DisplayList(out, mgr.Exercises(), completed)
	case a.Config.Next:
		mgr.Next(ctx)
		a.displayCurrent(mgr, out)
	case a.Config.Watch:
		return a.runWatch(ctx, mgr, out, log)
	default:
		a.displayCurrent(mgr, out)
	}

	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// runWatch re-evaluates the current exercise whenever its file changes,
// until the context is canceled.
func (a *Application) runWatch(ctx context.Context, mgr *workspace.Manager, out io.Writer, log logging.Logger) int {
	w, err := watcher.New(func(string) {
		mgr.UpdateCurrent(ctx)
		a.displayCurrent(mgr, out)
	}, log)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error starting watcher: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	defer w.Close()

	mgr.AttachWatcher(w)
	a.displayCurrent(mgr, out)

	<-ctx.Done()
	return apperrors.ExitErrorCanceled
}

func (a *Application) displayCurrent(mgr *workspace.Manager, out io.Writer) {
	completed, total := mgr.Progress()
	cli.DisplayCurrent(out, mgr.Current(), mgr.HintVisible(), completed, total)
}

// reporter selects the progress display for batch evaluations.
func (a *Application) reporter() orchestration.ProgressReporter {
	if a.Config.Quiet {
		return orchestration.NullProgressReporter{}
	}
	return cli.CLIProgressReporter{}
}

// exitFor maps single-exercise mode errors onto exit codes. A failing
// exercise and an unresolvable path both exit non-zero; the latter also
// prints the resolution error.
func (a *Application) exitFor(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	if !errors.Is(err, workspace.ErrExerciseFailed) {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	}
	if apperrors.IsContextError(err) {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitErrorGeneric
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
