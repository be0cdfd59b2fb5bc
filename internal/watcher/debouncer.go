package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration coalesces the burst of events an editor save produces
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer runs only the last function triggered within its window
type Debouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer; a non-positive duration uses the default
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{duration: d}
}

// Trigger schedules fn, replacing any pending call
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops a pending call
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the debounce window
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
