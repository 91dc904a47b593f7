package session

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered function once the delay passes without
// another trigger. Each Trigger cancels the pending run and restarts the timer.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	fn      func()
	gen     uint64
	pending bool
}

// NewDebouncer creates a debouncer. A zero delay still defers to the timer goroutine.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any pending function.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.fn = fn
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending function, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.fn = nil
	d.pending = false
}

// Flush runs the pending function now, on the caller's goroutine. Reports whether one ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	fn := d.fn
	d.fn = nil
	d.pending = false
	d.mu.Unlock()

	fn()
	return true
}

// Pending reports whether a function is waiting for the delay.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.pending = false
	d.mu.Unlock()

	fn()
}
