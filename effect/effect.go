// Package effect generates the rotating color sequences shown on the strip.
package effect

import "libdb.so/glowpad/led"

var (
	Red     = led.RGB(255, 0, 0)
	Green   = led.RGB(0, 255, 0)
	Blue    = led.RGB(0, 0, 255)
	Yellow  = led.RGB(255, 255, 0)
	Cyan    = led.RGB(0, 255, 255)
	Magenta = led.RGB(255, 0, 255)
)

// Palette is the repeating six color cycle.
var Palette = [6]led.RGBColor{Red, Green, Blue, Yellow, Cyan, Magenta}

// Fill colors every LED in dst so that LED i gets Palette[(i+offset) % 6].
// It does not allocate.
func Fill(dst led.LEDs, offset uint8) {
	for i := range dst {
		dst[i] = Palette[(uint(i)+uint(offset))%uint(len(Palette))]
	}
}

// Generate returns a new strip of length LEDs filled as Fill does.
func Generate(length uint, offset uint8) led.LEDs {
	leds := make(led.LEDs, length)
	Fill(leds, offset)
	return leds
}
