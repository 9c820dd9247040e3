package notes

import (
	"sync"
	"time"
)

// SearchDebounceDelay is the quiet period after the last keystroke before a
// search fires.
const SearchDebounceDelay = 300 * time.Millisecond

// Debouncer collapses rapid repeated triggers into one delayed call: each
// Trigger cancels the pending call and schedules a new one, so only the
// trailing edge fires. A closed debouncer never fires again.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, replacing any
// previously scheduled call. After Close, Trigger is a no-op.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		closed := d.closed
		d.mu.Unlock()
		if !closed {
			fn()
		}
	})
}

// Close cancels any pending call and neutralizes the debouncer.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
