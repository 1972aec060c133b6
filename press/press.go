// Package press turns a sampled "pressed" level into trigger pulses: one
// immediately on the press edge, then one every interval while the input is
// held.
package press

// Updater is the interface for types that turn press samples into triggers.
type Updater interface {
	// Update feeds one sample and the time elapsed since the previous one. It
	// returns true if a trigger fired for this sample.
	Update(pressed bool, elapsedMS uint32) bool
}

// Timer is an edge-plus-hold-repeat timer. The zero value is a released
// timer with a zero interval, which triggers on every held sample.
type Timer struct {
	// Interval is the hold-repeat period in milliseconds.
	Interval uint32

	acc  uint32
	held bool
}

var _ Updater = (*Timer)(nil)

// NewTimer creates a released timer that repeats every intervalMS while held.
func NewTimer(intervalMS uint32) Timer {
	return Timer{Interval: intervalMS}
}

// Update implements Updater.
//
// Releasing always resets the timer, so the next press triggers right away.
// While held, elapsed time accumulates and the interval is subtracted on each
// trigger rather than reset, which keeps the repeat cadence in phase when a
// poll arrives late. All arithmetic wraps.
func (t *Timer) Update(pressed bool, elapsedMS uint32) bool {
	if !pressed {
		t.held = false
		t.acc = 0
		return false
	}

	if !t.held {
		t.held = true
		t.acc = 0
		return true
	}

	t.acc += elapsedMS
	if t.acc >= t.Interval {
		t.acc -= t.Interval
		return true
	}

	return false
}

// Held returns true if the last sample was pressed.
func (t *Timer) Held() bool {
	return t.held
}

// Accumulated returns the milliseconds accumulated toward the next repeat.
func (t *Timer) Accumulated() uint32 {
	return t.acc
}
