// Package led describes strips of RGB LEDs and the colors written to them.
package led

import (
	"fmt"
	"image/color"
	"io"
	"unsafe"
)

// RGBColor is a single LED color in R, G, B channel order.
type RGBColor [3]uint8

// RGB creates a new RGBColor.
func RGB(r, g, b uint8) RGBColor {
	return RGBColor{r, g, b}
}

// String returns the color as a hex triplet, e.g. #ff00ff.
func (c RGBColor) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// RGBA converts the color into an opaque color.RGBA.
func (c RGBColor) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}

// Scale scales every channel by the given brightness. A brightness of 255
// leaves the color unchanged and a brightness of 0 turns it off.
func (c RGBColor) Scale(brightness uint8) RGBColor {
	b := uint16(brightness) + 1
	return RGBColor{
		uint8(uint16(c[0]) * b / 256),
		uint8(uint16(c[1]) * b / 256),
		uint8(uint16(c[2]) * b / 256),
	}
}

// LEDs describes a strip of LEDs. It is a preallocated slice of RGBColor.
type LEDs []RGBColor

// NewLEDs creates a new strip of LEDs. Colors are initialized to black
// (off).
func NewLEDs(numLEDs int) LEDs {
	return make(LEDs, numLEDs)
}

// WriteTo implements io.WriterTo. It writes the LED strip to the given writer
// as a series of RGBColor values.
func (l LEDs) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, c := range l {
		n, err := w.Write(c[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// AsPixels returns the LED strip as a slice of uint8 values. Each LED is
// represented by three values, one for each color channel. The returned slice
// shares memory with l.
func (l LEDs) AsPixels() []uint8 {
	if len(l) == 0 {
		return nil
	}
	return unsafe.Slice((*uint8)(unsafe.Pointer(&l[0])), 3*len(l))
}

// Set sets the color of the LED at the given index.
func (l LEDs) Set(i int, c RGBColor) {
	l[i] = c
}

// SetRange sets the color of the LEDs in the given range.
func (l LEDs) SetRange(start, end int, c RGBColor) {
	for i := start; i < end; i++ {
		l[i] = c
	}
}

// Draw draws the given LEDs into the strip at the given index.
// It stops when either l or other is exhausted and returns the number of LEDs
// written.
func (l LEDs) Draw(start int, other LEDs) int {
	for i := range other {
		if start+i >= len(l) {
			return i
		}
		l[start+i] = other[i]
	}
	return len(other)
}

// Scaled writes l scaled by brightness into dst and returns the number of
// LEDs written. dst and l may be the same strip.
func (l LEDs) Scaled(dst LEDs, brightness uint8) int {
	n := min(len(dst), len(l))
	for i := 0; i < n; i++ {
		dst[i] = l[i].Scale(brightness)
	}
	return n
}
