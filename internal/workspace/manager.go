package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pygym/pygym/internal/config"
	apperrors "github.com/pygym/pygym/internal/errors"
	"github.com/pygym/pygym/internal/exercise"
	"github.com/pygym/pygym/internal/logging"
	"github.com/pygym/pygym/internal/orchestration"
	"github.com/pygym/pygym/internal/runner"
	"github.com/pygym/pygym/internal/watcher"
)

// ErrExerciseFailed is returned by run-and-print operations when the
// addressed exercise does not pass, so the process can exit non-zero.
var ErrExerciseFailed = errors.New("exercise execution failed")

// Manager owns the runtime exercise collection and its lifecycle: the
// cursor, completion tracking, navigation, reset and solution lookup.
// All exported methods are safe for concurrent use; the watch-mode callback
// and the interactive loop may touch the manager from different goroutines.
type Manager struct {
	cfg      config.AppConfig
	engine   *orchestration.Engine
	run      runner.Runner
	settings Settings
	log      logging.Logger
	out      io.Writer

	mu             sync.Mutex
	ordered        []*exercise.Exercise
	byName         map[string]*exercise.Exercise
	current        int
	completedCount int
	completedFlag  bool
	showHint       bool
	firstRun       bool
	watch          *watcher.Watcher
}

// NewManager creates a Manager. Call Init before any other operation.
//
// Parameters:
//   - cfg: The application configuration.
//   - engine: The batch evaluation engine.
//   - run: The single-exercise runner (shared with the engine).
//   - settings: The persistence and hint collaborator.
//   - log: The logger.
//   - out: The writer for user-facing notifications.
//
// Returns:
//   - *Manager: The manager, not yet initialized.
func NewManager(cfg config.AppConfig, engine *orchestration.Engine, run runner.Runner, settings Settings, log logging.Logger, out io.Writer) *Manager {
	return &Manager{
		cfg:      cfg,
		engine:   engine,
		run:      run,
		settings: settings,
		log:      log,
		out:      out,
		byName:   map[string]*exercise.Exercise{},
	}
}

// Init discovers the workspace exercises, evaluates all of them, and
// restores the cursor from the persisted state. An empty workspace is valid:
// the manager then has no current exercise and every navigation operation is
// a reported no-op.
//
// Parameters:
//   - ctx: The context bounding the initial batch evaluation.
//   - reporter: The progress reporter for the batch.
//
// Returns:
//   - error: Non-nil when discovery fails.
func (m *Manager) Init(ctx context.Context, reporter orchestration.ProgressReporter) error {
	paths, err := exercise.Discover(m.cfg.ExercisesDir())
	if err != nil {
		return apperrors.WrapError(err, "discovering exercises in %s", m.cfg.ExercisesDir())
	}

	results := m.engine.EvaluateAll(ctx, paths, reporter, m.out)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ordered = make([]*exercise.Exercise, 0, len(results))
	m.byName = make(map[string]*exercise.Exercise, len(results))
	for _, res := range results {
		ex := &exercise.Exercise{
			Path: res.Path,
			Hint: m.settings.Hint(m.relPath(res.Path)),
		}
		applyResult(ex, res.Result)
		m.ordered = append(m.ordered, ex)
		if _, dup := m.byName[ex.Name()]; dup {
			m.log.Warn("duplicate exercise name, keeping the later entry", logging.String("name", ex.Name()))
		}
		m.byName[ex.Name()] = ex
	}

	m.current = m.cursorFromState()
	m.recountLocked()
	m.firstRun = m.settings.CheckFirstRun()
	m.log.Info("workspace initialized",
		logging.Int("exercises", len(m.ordered)),
		logging.Int("completed", m.completedCount))
	return nil
}

// cursorFromState maps the persisted last-exercise path back to an index,
// falling back to the first exercise when the saved path is unknown.
func (m *Manager) cursorFromState() int {
	saved := m.settings.LastExercise()
	if saved == "" {
		return 0
	}
	want := filepath.Join(m.cfg.ExercisesDir(), filepath.FromSlash(saved))
	for i, ex := range m.ordered {
		if ex.Path == want {
			return i
		}
	}
	return 0
}

// applyResult overwrites an exercise's evaluation-derived fields. Output is
// kept only for passing runs and error text only for failing ones, both
// sanitized for display.
func applyResult(ex *exercise.Exercise, res runner.Result) {
	if res.Passed {
		ex.Status = exercise.StatusDone
		ex.Output = exercise.Sanitize(res.Stdout)
		ex.Error = ""
		return
	}
	ex.Status = exercise.StatusPending
	ex.Output = ""
	ex.Error = exercise.Sanitize(res.ErrorText())
}

// FirstRun reports whether Init found a fresh workspace.
func (m *Manager) FirstRun() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.firstRun
}

// Current returns the exercise under the cursor, or nil for an empty
// workspace.
func (m *Manager) Current() *exercise.Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked()
}

func (m *Manager) currentLocked() *exercise.Exercise {
	if m.current < 0 || m.current >= len(m.ordered) {
		return nil
	}
	return m.ordered[m.current]
}

// Exercises returns the ordered exercise collection. The returned slice must
// not be mutated.
func (m *Manager) Exercises() []*exercise.Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ordered
}

// Progress returns the completed and total exercise counts.
func (m *Manager) Progress() (completed, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completedCount, len(m.ordered)
}

// AttachWatcher wires a file watcher that follows the cursor: Next restarts
// it on the new current exercise.
func (m *Manager) AttachWatcher(w *watcher.Watcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watch = w
	if cur := m.currentLocked(); cur != nil && w != nil {
		if err := w.Restart(cur.Path); err != nil {
			m.log.Warn("watcher restart failed", logging.Err(err))
		}
	}
}

// UpdateCurrent re-evaluates the exercise under the cursor and refreshes the
// completion count. When the last pending exercise turns DONE this prints
// the completion banner, exactly once per manager lifetime.
//
// Parameters:
//   - ctx: The context bounding the evaluation.
//
// Returns:
//   - exercise.Status: The new status, or "" for an empty workspace.
func (m *Manager) UpdateCurrent(ctx context.Context) exercise.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCurrentLocked(ctx)
}

func (m *Manager) updateCurrentLocked(ctx context.Context) exercise.Status {
	cur := m.currentLocked()
	if cur == nil {
		return ""
	}

	res := m.run.Run(ctx, cur.Path)
	applyResult(cur, res)
	m.recountLocked()

	if m.completedCount == len(m.ordered) && !m.completedFlag {
		fmt.Fprint(m.out, finishedBanner)
		m.completedFlag = true
	}
	return cur.Status
}

// recountLocked derives the completion count from the statuses themselves,
// so no update path can let the count drift from the collection.
func (m *Manager) recountLocked() {
	count := 0
	for _, ex := range m.ordered {
		if ex.Done() {
			count++
		}
	}
	m.completedCount = count
}

// CheckAll re-evaluates every exercise concurrently, preserving the cursor.
//
// Parameters:
//   - ctx: The context bounding the batch.
//   - reporter: The progress reporter for the batch.
func (m *Manager) CheckAll(ctx context.Context, reporter orchestration.ProgressReporter) {
	m.mu.Lock()
	paths := make([]string, len(m.ordered))
	for i, ex := range m.ordered {
		paths[i] = ex.Path
	}
	m.mu.Unlock()

	// Evaluation runs unlocked so progress display stays live.
	results := m.engine.EvaluateAll(ctx, paths, reporter, m.out)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, res := range results {
		if ex, ok := m.byName[filepath.Base(res.Path)]; ok {
			applyResult(ex, res.Result)
		}
	}
	m.recountLocked()
}

// Next advances the cursor to the following exercise, re-evaluates it,
// persists the new position and re-targets the watcher. At the end of the
// collection it reports completion instead of moving.
//
// Parameters:
//   - ctx: The context bounding the evaluation.
func (m *Manager) Next(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current+1 >= len(m.ordered) {
		fmt.Fprintln(m.out, "All exercises completed!")
		return
	}

	m.current++
	m.showHint = false
	m.updateCurrentLocked(ctx)

	cur := m.currentLocked()
	rel := m.relPath(cur.Path)
	if err := m.settings.SetLastExercise(rel); err != nil {
		m.log.Warn("persisting cursor failed", logging.String("exercise", rel), logging.Err(err))
	}
	if m.watch != nil {
		if err := m.watch.Restart(cur.Path); err != nil {
			m.log.Warn("watcher restart failed", logging.Err(err))
		}
	}
}

// Reset restores the current exercise from its pristine backup and
// re-evaluates it. A missing backup, like a missing current exercise, is a
// reported no-op rather than an error. Resetting a DONE exercise re-arms the
// completion banner.
//
// Parameters:
//   - ctx: The context bounding the re-evaluation.
func (m *Manager) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.currentLocked()
	if cur == nil {
		fmt.Fprintln(m.out, "No current exercise to reset.")
		return
	}

	backup := filepath.Join(m.cfg.BackupsDir(), filepath.FromSlash(m.relPath(cur.Path)))
	if _, err := os.Stat(backup); err != nil {
		fmt.Fprintf(m.out, "No backup found for %s.\n", cur.Path)
		return
	}

	wasDone := cur.Done()
	if err := copyFile(backup, cur.Path); err != nil {
		m.log.Error("restoring backup failed", logging.String("backup", backup), logging.Err(err))
		fmt.Fprintf(m.out, "Failed to reset %s: %v\n", cur.Name(), err)
		return
	}

	m.updateCurrentLocked(ctx)
	if wasDone {
		m.completedFlag = false
	}
}

// ResetByPath restores an arbitrary exercise from its backup. Unlike Reset,
// an invalid target is a boundary error: the path must exist, must lie under
// the exercises tree, and must have a backup.
//
// Parameters:
//   - path: The exercise path, absolute or workspace-relative.
//
// Returns:
//   - error: A PathResolutionError describing the violated precondition.
func (m *Manager) ResetByPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperrors.NewPathResolutionError(path, "%v", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return apperrors.NewPathResolutionError(path, "exercise path not found")
	}

	rel, err := filepath.Rel(m.cfg.ExercisesDir(), abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return apperrors.NewPathResolutionError(path, "path must be under the exercises tree")
	}

	backup := filepath.Join(m.cfg.BackupsDir(), rel)
	if _, err := os.Stat(backup); err != nil {
		return apperrors.NewPathResolutionError(path, "no backup found for %s", filepath.ToSlash(rel))
	}

	if err := copyFile(backup, abs); err != nil {
		return apperrors.WrapError(err, "restoring backup for %s", filepath.ToSlash(rel))
	}
	fmt.Fprintf(m.out, "Reset exercise: %s\n", filepath.ToSlash(rel))
	return nil
}

// Solution copies the packaged solution for the current exercise into the
// workspace solutions tree and returns its display path. A missing current
// exercise or missing packaged solution is reported with ok=false, never
// raised.
//
// Returns:
//   - string: The display path of the copied solution.
//   - bool: Whether a solution was found and copied.
func (m *Manager) Solution() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.currentLocked()
	if cur == nil {
		return "", false
	}

	rel := filepath.FromSlash(m.relPath(cur.Path))
	src := filepath.Join(m.cfg.PackageSolutionsDir(), rel)
	if _, err := os.Stat(src); err != nil {
		m.log.Debug("no packaged solution", logging.String("exercise", rel))
		return "", false
	}

	dst := filepath.Join(m.cfg.SolutionsDir(), rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		m.log.Error("creating solutions dir failed", logging.Err(err))
		return "", false
	}
	if err := copyFile(src, dst); err != nil {
		m.log.Error("copying solution failed", logging.String("exercise", rel), logging.Err(err))
		return "", false
	}
	return m.settings.LocalSolutionPath(dst), true
}

// ToggleHint flips hint visibility for the current exercise.
func (m *Manager) ToggleHint() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showHint = !m.showHint
}

// HintVisible reports whether the hint should currently be displayed.
func (m *Manager) HintVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.showHint
}

// RunAndPrint resolves a named exercise, runs it once, and prints its stdout
// on success or its diagnostic on failure.
//
// Parameters:
//   - ctx: The context bounding the run.
//   - w: The writer for the exercise output.
//   - path: The exercise path, absolute, workspace-relative, or relative to
//     the exercises root.
//
// Returns:
//   - error: A PathResolutionError for an unresolvable path, or
//     ErrExerciseFailed when the exercise does not pass.
func (m *Manager) RunAndPrint(ctx context.Context, w io.Writer, path string) error {
	abs, err := m.resolveExercisePath(path)
	if err != nil {
		return err
	}
	return m.runAndReport(ctx, w, abs)
}

// RunSolution runs the packaged solution matching an exercise path and
// prints its output, mapping the exercises tree onto the solutions tree.
//
// Parameters:
//   - ctx: The context bounding the run.
//   - w: The writer for the solution output.
//   - path: The exercise (or solution) path.
//
// Returns:
//   - error: A PathResolutionError when no solution file exists, or
//     ErrExerciseFailed when the solution does not pass.
func (m *Manager) RunSolution(ctx context.Context, w io.Writer, path string) error {
	parts := strings.Split(filepath.ToSlash(path), "/")
	switch {
	case len(parts) > 0 && parts[0] == "exercises":
		parts[0] = "solutions"
	case !containsSegment(parts, "solutions"):
		parts = append([]string{"solutions"}, parts...)
	}

	root := filepath.Join(m.cfg.PackageDir, filepath.Join(parts...))
	if _, err := os.Stat(root); err != nil {
		return apperrors.NewPathResolutionError(path, "solution file not found")
	}
	return m.runAndReport(ctx, w, root)
}

func (m *Manager) runAndReport(ctx context.Context, w io.Writer, path string) error {
	res := m.run.Run(ctx, path)
	if res.Passed {
		fmt.Fprintln(w, res.Stdout)
		return nil
	}
	fmt.Fprintln(w, res.ErrorText())
	return ErrExerciseFailed
}

// resolveExercisePath maps a caller-supplied path onto the exercises tree.
// The path may be absolute, contain an explicit exercises/ segment, or be
// relative to the exercises root; the resolved file must exist.
func (m *Manager) resolveExercisePath(path string) (string, error) {
	if path == "" || path == "." {
		return "", apperrors.NewPathResolutionError(path, "a concrete exercise file is required")
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	relParts := parts
	for i, part := range parts {
		if part == "exercises" {
			relParts = parts[i+1:]
			break
		}
	}
	if len(relParts) == 0 {
		return "", apperrors.NewPathResolutionError(path, "cannot determine exercise from path")
	}

	abs := filepath.Join(m.cfg.ExercisesDir(), filepath.Join(relParts...))
	if _, err := os.Stat(abs); err != nil {
		return "", apperrors.NewPathResolutionError(path, "exercise file not found")
	}
	return abs, nil
}

// relPath returns an exercise path relative to the exercises root, in slash
// form.
func (m *Manager) relPath(path string) string {
	rel, err := filepath.Rel(m.cfg.ExercisesDir(), path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func containsSegment(parts []string, want string) bool {
	for _, p := range parts {
		if p == want {
			return true
		}
	}
	return false
}

// copyFile copies src over dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
