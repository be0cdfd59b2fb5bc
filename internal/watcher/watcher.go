// Package watcher reports changes to the tree file being displayed
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var (
	// ErrFileRemoved is reported when the watched file disappears
	ErrFileRemoved = errors.New("watched file was removed")
	// ErrAlreadyStarted is returned by a second Start
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounceDuration = d
	}
}

// WithOnChange sets the callback invoked after the file changed.
// It runs on a timer goroutine.
func WithOnChange(fn func()) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the callback invoked on watch errors
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher monitors a single file through its parent directory, so atomic
// rename-on-save editors are picked up too.
type Watcher struct {
	path             string
	debounceDuration time.Duration
	onChange         func()
	onError          func(error)

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a watcher for path
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}

	w := &Watcher{
		path:             absPath,
		debounceDuration: DefaultDebounceDuration,
		onChange:         func() {},
		onError:          func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounceDuration)
	return w, nil
}

// Path returns the absolute watched path
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching until ctx is cancelled or Stop is called
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.fsWatcher = fsw
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(ctx, fsw, w.done)
	return nil
}

// Stop stops watching and waits for the event loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.fsWatcher == nil {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.fsWatcher.Close()
	w.fsWatcher = nil
	done := w.done
	w.mu.Unlock()

	<-done
	w.debouncer.Cancel()
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	target := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				w.debouncer.Trigger(w.onChange)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				// rename-on-save shows up as Rename followed by Create
				w.onError(ErrFileRemoved)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}
