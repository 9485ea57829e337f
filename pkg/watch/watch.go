// Package watch triggers index rebuilds when input files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is the quiet period before a rebuild is triggered.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a fixed set of files. The parent directory of
// every file is watched so that editors replacing a file by rename are
// noticed too.
type Watcher struct {
	Debounce time.Duration
	Logger   *slog.Logger

	mu      sync.Mutex
	files   map[string]struct{}
	watcher *fsnotify.Watcher
	closed  bool
}

// New starts watching paths.
func New(paths []string, logger *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		Debounce: DefaultDebounce,
		Logger:   logger,
		files:    make(map[string]struct{}),
		watcher:  watcher,
	}

	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	return w, nil
}

// Files returns the watched files.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Run calls fn with the changed files after each burst of changes has been
// quiet for the debounce period. Calls are serial. Run returns when ctx is
// done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context, changed []string)) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	pending := make(map[string]struct{})
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if _, tracked := w.files[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.Logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = struct{}{}
			fire = time.After(debounce)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			slices.Sort(changed)
			fn(ctx, changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("file watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
