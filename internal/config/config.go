// Package config defines the application configuration and its sources:
// command-line flags first, environment variables second, defaults last.
package config

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"time"

	apperrors "github.com/pygym/pygym/internal/errors"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "PYGYM_"

// DefaultTimeout is the wall-clock budget for a single exercise evaluation,
// covering both direct execution and a validation run.
const DefaultTimeout = 10 * time.Second

// AppConfig holds the full application configuration, constructed once at
// startup and passed explicitly to every component.
type AppConfig struct {
	// WorkspaceDir is the user workspace root containing exercises/ and solutions/.
	WorkspaceDir string
	// PackageDir is the pygym asset root containing tests/, backups/,
	// solutions/ and config/hints.toml.
	PackageDir string
	// Python is the interpreter used to run exercises and pytest.
	Python string
	// Timeout is the per-exercise wall-clock execution budget.
	Timeout time.Duration
	// Workers bounds the evaluation worker pool; 0 means GOMAXPROCS.
	Workers int
	// Quiet suppresses progress display.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// MetricsAddr, when non-empty, is the listen address for the Prometheus
	// metrics endpoint.
	MetricsAddr string

	// List selects the exercise listing mode.
	List bool
	// Next advances to and evaluates the next pending exercise.
	Next bool
	// Watch re-evaluates the current exercise whenever its file changes.
	Watch bool
	// CheckAll re-evaluates every exercise and prints a summary.
	CheckAll bool
	// RunPath, when non-empty, runs a single exercise and prints its output.
	RunPath string
	// SolutionPath, when non-empty, resolves and copies the matching solution.
	SolutionPath string
	// ResetPath, when non-empty, restores an exercise from its backup.
	ResetPath string
}

// ExercisesDir returns the exercises root inside the workspace.
func (c AppConfig) ExercisesDir() string { return filepath.Join(c.WorkspaceDir, "exercises") }

// SolutionsDir returns the workspace directory solutions are copied into.
func (c AppConfig) SolutionsDir() string { return filepath.Join(c.WorkspaceDir, "solutions") }

// TestsDir returns the validation test root inside the package tree.
func (c AppConfig) TestsDir() string { return filepath.Join(c.PackageDir, "tests") }

// BackupsDir returns the pristine backup root inside the package tree.
func (c AppConfig) BackupsDir() string { return filepath.Join(c.PackageDir, "backups") }

// PackageSolutionsDir returns the solution source root inside the package tree.
func (c AppConfig) PackageSolutionsDir() string { return filepath.Join(c.PackageDir, "solutions") }

// HintsFile returns the path of the packaged hints file.
func (c AppConfig) HintsFile() string {
	return filepath.Join(c.PackageDir, "config", "hints.toml")
}

// StateFile returns the path of the persisted workspace state file.
func (c AppConfig) StateFile() string { return filepath.Join(c.WorkspaceDir, ".pygym.toml") }

// EffectiveWorkers resolves the worker pool size, substituting the host's
// available concurrency when Workers is 0.
func (c AppConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ParseConfig parses command-line arguments into an AppConfig.
// Priority order is: CLI flags > environment variables > defaults.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for usage and error output.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		WorkspaceDir: ".",
		PackageDir:   ".pygym",
		Python:       "python3",
		Timeout:      DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.WorkspaceDir, "workspace", cfg.WorkspaceDir, "workspace root containing the exercises/ tree")
	fs.StringVar(&cfg.PackageDir, "package-dir", cfg.PackageDir, "pygym asset root (tests, backups, solutions, hints)")
	fs.StringVar(&cfg.Python, "python", cfg.Python, "Python interpreter used for exercises and pytest")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-exercise execution timeout")
	fs.IntVar(&cfg.Workers, "workers", 0, "evaluation worker pool size (0 = number of CPUs)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress progress display")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress progress display (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging (shorthand)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "listen address for Prometheus metrics (disabled when empty)")

	fs.BoolVar(&cfg.List, "list", false, "list all exercises with their status")
	fs.BoolVar(&cfg.Next, "next", false, "advance to the next exercise and evaluate it")
	fs.BoolVar(&cfg.Watch, "watch", false, "watch the current exercise and re-evaluate on change")
	fs.BoolVar(&cfg.CheckAll, "check-all", false, "re-evaluate every exercise and print a summary")
	fs.StringVar(&cfg.RunPath, "run", "", "run a single exercise and print its output")
	fs.StringVar(&cfg.SolutionPath, "solution", "", "copy the matching solution into the workspace")
	fs.StringVar(&cfg.ResetPath, "reset", "", "restore an exercise from its pristine backup")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Evaluate, navigate and reset Python exercises.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables prefixed with %s override unset flags.\n", EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}

	abs, err := filepath.Abs(cfg.WorkspaceDir)
	if err != nil {
		return AppConfig{}, apperrors.NewConfigError("invalid workspace path %q: %v", cfg.WorkspaceDir, err)
	}
	cfg.WorkspaceDir = abs
	if !filepath.IsAbs(cfg.PackageDir) {
		cfg.PackageDir = filepath.Join(cfg.WorkspaceDir, cfg.PackageDir)
	}

	return cfg, nil
}

// validate rejects configurations the engine cannot run with.
func validate(cfg AppConfig) error {
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Workers < 0 {
		return apperrors.NewConfigError("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Python == "" {
		return apperrors.NewConfigError("python interpreter must not be empty")
	}
	return nil
}
