package logtail

import "time"

// DefaultDebounce is how long the watcher waits for a burst of change
// notifications to settle before polling.
const DefaultDebounce = 100 * time.Millisecond

// debouncer is a restartable timer with a single pending slot. It is owned
// by one goroutine, which selects on C.
type debouncer struct {
	timer    *time.Timer
	duration time.Duration
	pending  bool
}

func newDebouncer(d time.Duration) *debouncer {
	t := time.NewTimer(d)
	t.Stop()
	return &debouncer{timer: t, duration: d}
}

// trigger schedules a fire, pushing back one that is already pending.
func (d *debouncer) trigger() {
	d.timer.Reset(d.duration)
	d.pending = true
}

// C is nil while nothing is pending, so a select on it blocks.
func (d *debouncer) C() <-chan time.Time {
	if !d.pending {
		return nil
	}
	return d.timer.C
}

// fired must be called after receiving from C.
func (d *debouncer) fired() {
	d.pending = false
}

func (d *debouncer) cancel() {
	d.timer.Stop()
	d.pending = false
}
