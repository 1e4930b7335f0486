// Package watcher provides a file watcher for the current exercise. The
// workspace manager restarts the watch whenever the cursor moves, so exactly
// one exercise file is observed at a time.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pygym/pygym/internal/logging"
)

// debounceInterval coalesces the bursts of events editors emit on save.
const debounceInterval = 200 * time.Millisecond

// Watcher observes a single exercise file and invokes a callback when its
// content changes. The parent directory is watched rather than the file
// itself: many editors replace files on save, which would otherwise drop
// the watch.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(path string)
	log      logging.Logger

	mu     sync.Mutex
	target string
	dir    string
	last   time.Time

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a watcher that calls onChange with the watched file's path
// whenever the file is written or recreated. The watcher is idle until the
// first Restart call.
//
// Parameters:
//   - onChange: The callback invoked on file change; called from the
//     watcher's goroutine.
//   - log: The logger for watch diagnostics.
//
// Returns:
//   - *Watcher: The running watcher.
//   - error: Non-nil if the underlying notification facility is unavailable.
func New(onChange func(path string), log logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		log:      log,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Restart points the watcher at a different exercise file, dropping any
// previous watch. Safe to call concurrently with event delivery.
func (w *Watcher) Restart(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(path)
	if w.dir != "" && w.dir != dir {
		// Removing a vanished directory only yields a benign error.
		if err := w.fsw.Remove(w.dir); err != nil {
			w.log.Debug("remove old watch", logging.String("dir", w.dir), logging.Err(err))
		}
	}
	if w.dir != dir {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dir = dir
	w.target = path
	w.last = time.Time{}
	w.log.Debug("watching exercise", logging.String("path", path))
	return nil
}

// Close stops event delivery and releases the underlying watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", logging.Err(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}

	w.mu.Lock()
	target := w.target
	now := time.Now()
	debounced := now.Sub(w.last) < debounceInterval
	if !debounced {
		w.last = now
	}
	w.mu.Unlock()

	if target == "" || debounced {
		return
	}
	if filepath.Clean(ev.Name) != filepath.Clean(target) {
		return
	}
	w.onChange(target)
}
