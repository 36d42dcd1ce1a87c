package preview

import (
	"sync"
	"time"
)

// CancelFunc cancels the task it was returned for, if it is still pending.
type CancelFunc func()

// Debouncer holds at most one pending task. Submitting a new task cancels
// and replaces the previous one, so only the last task of a burst runs.
type Debouncer struct {
	clock Clock
	delay time.Duration

	mu    sync.Mutex
	timer Timer
	seq   uint64
}

// NewDebouncer creates a debouncer that runs tasks after delay of quiet.
func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Submit schedules task, replacing any pending one.
func (d *Debouncer) Submit(task func()) CancelFunc {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
	id := d.seq
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A stopped timer may still fire if Stop lost the race.
		if d.seq != id {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		task()
	})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.seq == id {
			d.stopLocked()
		}
	}
}

// Cancel drops the pending task, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Pending reports whether a task is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer == nil {
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.seq++
}
