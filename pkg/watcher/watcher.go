// Package watcher reports changes to a set of files, debounced per file.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers the absolute path of a watched file once its writes have
// settled for the debounce interval.
//
// The parent directories are watched rather than the files, so editors that
// save by replacing the file are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	files  map[string]struct{}
	dirs   map[string]struct{}
	timers map[string]*time.Timer

	events chan string
	errors chan error
	done   chan struct{}
	once   sync.Once
}

// New creates a watcher with the given debounce interval
func New(debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		fs:       fs,
		debounce: debounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
		events:   make(chan string, 16),
		errors:   make(chan error, 16),
		done:     make(chan struct{}),
	}, nil
}

// Add starts watching the given files
func (w *Watcher) Add(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}

		dir := filepath.Dir(absPath)
		if _, ok := w.dirs[dir]; !ok {
			if err := w.fs.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.dirs[dir] = struct{}{}
		}
		w.files[absPath] = struct{}{}
	}

	return nil
}

// Files returns the watched files, sorted
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Events returns the channel of changed files
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors returns non-fatal watcher errors. Errors are dropped when nobody
// reads them.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Run processes file system events until ctx is cancelled or the watcher
// is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-w.done:
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				w.handleFileChange(event.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// handleFileChange restarts the debounce timer of a watched file
func (w *Watcher) handleFileChange(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok {
		return
	}

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		select {
		case w.events <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) stop() {
	w.once.Do(func() {
		close(w.done)

		w.mu.Lock()
		for _, timer := range w.timers {
			timer.Stop()
		}
		w.mu.Unlock()
	})
}

// Close stops the watcher and releases its resources
func (w *Watcher) Close() error {
	w.stop()
	return w.fs.Close()
}
