package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when NewFileWatcher receives a zero window.
const DefaultDebounce = 500 * time.Millisecond

// Change lists the watched files touched during one debounce window.
type Change struct {
	Paths []string
}

// Has reports whether path is among the changed files.
func (c Change) Has(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, changed := range c.Paths {
		if changed == abs {
			return true
		}
	}
	return false
}

// FileWatcher watches individual files through their parent directories so
// editors that save by rename are still observed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(Change)

	files map[string]bool
	dirs  map[string]bool

	mu      sync.Mutex
	pending map[string]bool
}

// NewFileWatcher creates a watcher that calls onChange after each quiet window.
func NewFileWatcher(debounce time.Duration, onChange func(Change)) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
		files:    map[string]bool{},
		dirs:     map[string]bool{},
		pending:  map[string]bool{},
	}, nil
}

// Watch adds files to the watch set.
func (w *FileWatcher) Watch(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	debouncer := NewDebouncer(w.debounce, w.flush)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event.Op) || !w.files[filepath.Clean(event.Name)] {
				continue
			}
			w.mu.Lock()
			w.pending[filepath.Clean(event.Name)] = true
			w.mu.Unlock()
			debouncer.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *FileWatcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = map[string]bool{}
	w.mu.Unlock()

	if len(paths) == 0 || w.onChange == nil {
		return
	}
	sort.Strings(paths)
	w.onChange(Change{Paths: paths})
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Rename)
}
