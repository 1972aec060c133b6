// Package screen lays out the status labels shown on the text display.
package screen

import (
	"strconv"

	"libdb.so/glowpad/state"
)

// Label is a short line of text drawn with its top-left corner at X, Y.
type Label struct {
	X, Y int
	Text string
}

// Fixed label positions, sized for a 128x32 display with a 6x10 font.
var (
	OffsetPos     = [2]int{0, 0}
	BrightnessPos = [2]int{64, 0}
	MenuPos       = [2]int{0, 22}
)

// Labels returns the offset, brightness and menu labels for one frame.
// offsetSteps is the number of offset positions; the offset is shown
// 1-based.
func Labels(s state.State, offsetSteps uint8, item string) [3]Label {
	return [3]Label{
		{
			X:    OffsetPos[0],
			Y:    OffsetPos[1],
			Text: "O: " + strconv.Itoa(int(s.PhaseOffset)+1) + " / " + strconv.Itoa(int(offsetSteps)),
		},
		{
			X:    BrightnessPos[0],
			Y:    BrightnessPos[1],
			Text: "B: " + strconv.Itoa(int(s.Brightness)) + " / 255",
		},
		{
			X:    MenuPos[0],
			Y:    MenuPos[1],
			Text: item,
		},
	}
}
