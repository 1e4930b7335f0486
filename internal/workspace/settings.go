package workspace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/pygym/pygym/internal/config"
	apperrors "github.com/pygym/pygym/internal/errors"
	"github.com/pygym/pygym/internal/logging"
)

//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks

// Settings is the persistence and lookup collaborator of the Manager. It
// answers where the user left off, whether the workspace is fresh, and what
// static hint text belongs to an exercise.
type Settings interface {
	// LastExercise returns the saved cursor position as a path relative to
	// the exercises root, or "" when none was saved.
	LastExercise() string
	// SetLastExercise persists the cursor position.
	SetLastExercise(rel string) error
	// Hint returns the static hint text for an exercise, or "" when the
	// exercise has none.
	Hint(rel string) string
	// LocalSolutionPath shortens an absolute solution path for display.
	LocalSolutionPath(path string) string
	// CheckFirstRun reports true exactly once per workspace lifetime.
	CheckFirstRun() bool
}

// persistedState is the on-disk shape of the workspace state file.
type persistedState struct {
	LastExercise string `toml:"last_exercise"`
	FirstRunDone bool   `toml:"first_run_done"`
}

// FileSettings is the production Settings implementation: state lives in a
// TOML file at the workspace root, hints come from the packaged hints file.
type FileSettings struct {
	statePath    string
	workspaceDir string
	log          logging.Logger

	mu    sync.Mutex
	state persistedState
	hints map[string]string
}

// NewFileSettings loads (or creates) the persisted workspace state and the
// packaged hints file.
//
// A missing state file is created with defaults. A missing or malformed
// hints file is tolerated: hints degrade to empty strings.
//
// Parameters:
//   - cfg: The application configuration (state and hints file locations).
//   - log: The logger for settings diagnostics.
//
// Returns:
//   - *FileSettings: The loaded settings.
//   - error: A StateError when the state file cannot be read or created.
func NewFileSettings(cfg config.AppConfig, log logging.Logger) (*FileSettings, error) {
	s := &FileSettings{
		statePath:    cfg.StateFile(),
		workspaceDir: cfg.WorkspaceDir,
		log:          log,
		hints:        map[string]string{},
	}

	if err := s.loadState(); err != nil {
		return nil, err
	}
	s.loadHints(cfg.HintsFile())
	return s, nil
}

// loadState reads the state file, creating it with defaults when missing.
func (s *FileSettings) loadState() error {
	data, err := os.ReadFile(s.statePath)
	if os.IsNotExist(err) {
		return s.save()
	}
	if err != nil {
		return apperrors.StateError{Cause: err}
	}
	if err := toml.Unmarshal(data, &s.state); err != nil {
		return apperrors.StateError{Cause: err}
	}
	return nil
}

// loadHints reads the packaged hints file. Keys in the [hints] table are
// exercise paths relative to the exercises root.
func (s *FileSettings) loadHints(path string) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		s.log.Debug("hints file unavailable", logging.String("path", path), logging.Err(err))
		return
	}
	s.hints = v.GetStringMapString("hints")
}

func (s *FileSettings) save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.state); err != nil {
		return apperrors.StateError{Cause: err}
	}
	if err := os.WriteFile(s.statePath, buf.Bytes(), 0o644); err != nil {
		return apperrors.StateError{Cause: err}
	}
	return nil
}

// LastExercise returns the saved cursor position.
func (s *FileSettings) LastExercise() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastExercise
}

// SetLastExercise persists the cursor position immediately.
func (s *FileSettings) SetLastExercise(rel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastExercise = rel
	return s.save()
}

// Hint returns the hint text for an exercise, or "" when none is defined.
// Lookup is case-insensitive because the hints table keys are normalized to
// lower case on load.
func (s *FileSettings) Hint(rel string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hints[strings.ToLower(filepath.ToSlash(rel))]
}

// LocalSolutionPath returns the solution path relative to the workspace
// root, falling back to the input when it lies outside the workspace.
func (s *FileSettings) LocalSolutionPath(path string) string {
	rel, err := filepath.Rel(s.workspaceDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// CheckFirstRun reports whether this is the first run of the workspace and
// flips the persisted flag, so subsequent calls (and subsequent processes)
// see false.
func (s *FileSettings) CheckFirstRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.FirstRunDone {
		return false
	}
	s.state.FirstRunDone = true
	if err := s.save(); err != nil {
		s.log.Warn("persisting first-run flag failed", logging.Err(err))
	}
	return true
}
