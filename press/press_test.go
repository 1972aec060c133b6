package press

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerHoldRepeat(t *testing.T) {
	timer := NewTimer(200)

	var fired []int
	for tick := 1; tick <= 11; tick++ {
		if timer.Update(true, 20) {
			fired = append(fired, tick)
		}
	}

	assert.Equal(t, []int{1, 11}, fired)
	assert.True(t, timer.Held())
	assert.Equal(t, uint32(0), timer.Accumulated())
}

func TestTimerRepeatKeepsPhase(t *testing.T) {
	timer := NewTimer(200)
	assert.True(t, timer.Update(true, 0))

	// A late poll carries the overshoot into the next period.
	assert.True(t, timer.Update(true, 250))
	assert.Equal(t, uint32(50), timer.Accumulated())

	assert.False(t, timer.Update(true, 100))
	assert.True(t, timer.Update(true, 50))
	assert.Equal(t, uint32(0), timer.Accumulated())
}

func TestTimerReleaseRearms(t *testing.T) {
	tests := []struct {
		name      string
		heldTicks int
	}{
		{"released", 0},
		{"edge only", 1},
		{"mid interval", 5},
		{"after repeat", 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			timer := NewTimer(200)
			for i := 0; i < test.heldTicks; i++ {
				timer.Update(true, 20)
			}

			assert.False(t, timer.Update(false, 20))
			assert.False(t, timer.Held())
			assert.Equal(t, uint32(0), timer.Accumulated())

			assert.True(t, timer.Update(true, 20), "press after release must trigger")
		})
	}
}

func TestTimerReleasedNeverTriggers(t *testing.T) {
	timer := NewTimer(200)
	for _, elapsed := range []uint32{0, 1, 20, 200, 5000, math.MaxUint32} {
		assert.False(t, timer.Update(false, elapsed))
		assert.Equal(t, uint32(0), timer.Accumulated())
	}
}

func TestTimerZeroInterval(t *testing.T) {
	var timer Timer
	for i := 0; i < 5; i++ {
		assert.True(t, timer.Update(true, 20))
	}
}

func TestTimerWraps(t *testing.T) {
	timer := NewTimer(math.MaxUint32)
	assert.True(t, timer.Update(true, 0))
	assert.False(t, timer.Update(true, math.MaxUint32-1))
	assert.True(t, timer.Update(true, 1))

	// Overflowing the accumulator wraps instead of failing.
	assert.False(t, timer.Update(true, math.MaxUint32-1))
	assert.False(t, timer.Update(true, 10))
	assert.Equal(t, uint32(8), timer.Accumulated())
}
