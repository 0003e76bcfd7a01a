// Package watcher re-runs work when a scene file changes.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces bursts of triggers into one callback, run once the
// triggers have been quiet for the debounce duration.
type Debouncer struct {
	duration time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer returns a debouncer; d <= 0 uses DefaultDebounce.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounce
	}
	return &Debouncer{duration: d}
}

// Trigger (re)starts the quiet period. Only the callback of the latest
// Trigger runs.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		if !d.claim(seq) {
			return
		}
		fn()
	})
}

// claim reports whether seq is still the latest trigger. A timer that fired
// while a newer Trigger was stopping it loses here.
func (d *Debouncer) claim(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return false
	}
	d.timer = nil
	return true
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the quiet period.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
