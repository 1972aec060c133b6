package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"libdb.so/glowpad/state"
)

func TestLabels(t *testing.T) {
	got := Labels(state.State{Brightness: 32, PhaseOffset: 0}, 8, "Offset")
	assert.Equal(t, [3]Label{
		{X: 0, Y: 0, Text: "O: 1 / 8"},
		{X: 64, Y: 0, Text: "B: 32 / 255"},
		{X: 0, Y: 22, Text: "Offset"},
	}, got)

	got = Labels(state.State{Brightness: 255, PhaseOffset: 7}, 8, "Brightness")
	assert.Equal(t, "O: 8 / 8", got[0].Text)
	assert.Equal(t, "B: 255 / 255", got[1].Text)
	assert.Equal(t, "Brightness", got[2].Text)
}
