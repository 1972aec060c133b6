// Package state holds the brightness and rotation offset shared between the
// polling loop, button actions and any interrupt-driven writer.
package state

import "sync"

// DefaultBrightness is the brightness on power-up.
const DefaultBrightness uint8 = 32

// State is the mutable record guarded by Shared.
type State struct {
	// Brightness scales every emitted color. 255 is full brightness.
	Brightness uint8
	// PhaseOffset rotates the color palette. It is reduced modulo the number
	// of offset steps when stepped.
	PhaseOffset uint8
}

// Default returns the power-up state.
func Default() State {
	return State{Brightness: DefaultBrightness}
}

// Shared guards a single State. Access goes through With, which holds a mutex
// and, on microcontrollers, keeps interrupts disabled for its whole scope.
type Shared struct {
	mu sync.Mutex
	s  State
}

// New creates a Shared holding the default state.
func New() *Shared {
	return &Shared{s: Default()}
}

// With runs f with exclusive access to the state and returns what f returns.
// f must be short and must not block or call With again.
func With[R any](sh *Shared, f func(*State) R) R {
	var r R
	critical(func() {
		sh.mu.Lock()
		defer sh.mu.Unlock()
		r = f(&sh.s)
	})
	return r
}

// Update runs f with exclusive access to the state.
func (sh *Shared) Update(f func(*State)) {
	With(sh, func(s *State) struct{} {
		f(s)
		return struct{}{}
	})
}

// Snapshot returns a consistent copy of the state.
func (sh *Shared) Snapshot() State {
	return With(sh, func(s *State) State { return *s })
}

// StepOffset advances the phase offset by one, wrapping at steps. A steps of
// 0 wraps at 256.
func (sh *Shared) StepOffset(steps uint8) uint8 {
	return With(sh, func(s *State) uint8 {
		s.PhaseOffset++
		if steps > 0 {
			s.PhaseOffset %= steps
		}
		return s.PhaseOffset
	})
}

// StepOffsetBack moves the phase offset back by one, wrapping at steps.
func (sh *Shared) StepOffsetBack(steps uint8) uint8 {
	return With(sh, func(s *State) uint8 {
		if steps == 0 {
			s.PhaseOffset--
			return s.PhaseOffset
		}
		n := uint16(steps)
		s.PhaseOffset = uint8((uint16(s.PhaseOffset)%n + n - 1) % n)
		return s.PhaseOffset
	})
}

// DimBy lowers the brightness by step. It wraps below zero, so repeated
// dimming cycles back to full brightness.
func (sh *Shared) DimBy(step uint8) uint8 {
	return With(sh, func(s *State) uint8 {
		s.Brightness -= step
		return s.Brightness
	})
}

// BrightenBy raises the brightness by step, wrapping above 255.
func (sh *Shared) BrightenBy(step uint8) uint8 {
	return With(sh, func(s *State) uint8 {
		s.Brightness += step
		return s.Brightness
	})
}

// Reset restores the power-up state.
func (sh *Shared) Reset() {
	sh.Update(func(s *State) { *s = Default() })
}
