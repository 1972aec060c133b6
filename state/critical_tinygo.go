//go:build tinygo

package state

import "runtime/interrupt"

func critical(f func()) {
	state := interrupt.Disable()
	f()
	interrupt.Restore(state)
}
