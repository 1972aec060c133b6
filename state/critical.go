//go:build !tinygo

package state

// critical runs f directly. Hosts have no interrupt handlers touching the
// state; goroutines are kept out by the mutex.
func critical(f func()) {
	f()
}
