// Package button binds a press timer to an input and an action.
package button

import "libdb.so/glowpad/press"

// Input is the interface for anything that can be sampled for a press.
// Implementations resolve active-low wiring and must report read failures as
// not pressed.
type Input interface {
	Pressed() bool
}

// InputFunc is a function that implements Input.
type InputFunc func() bool

// Pressed implements Input.
func (f InputFunc) Pressed() bool { return f() }

// Action is run each time a button triggers.
type Action func()

// Button owns a timer, an input and an action. It is not safe for concurrent
// use; it belongs to the polling loop.
type Button struct {
	timer  press.Updater
	input  Input
	action Action
}

// New creates a new Button. A nil action is treated as a no-op.
func New(timer press.Updater, input Input, action Action) *Button {
	if action == nil {
		action = func() {}
	}
	return &Button{
		timer:  timer,
		input:  input,
		action: action,
	}
}

// Update samples the input once and feeds it to the timer. If the timer
// triggers, the action runs to completion before Update returns true.
func (b *Button) Update(elapsedMS uint32) bool {
	if !b.timer.Update(b.input.Pressed(), elapsedMS) {
		return false
	}
	b.action()
	return true
}
