package led

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := []struct {
		in         RGBColor
		brightness uint8
		want       RGBColor
	}{
		{RGB(255, 128, 1), 255, RGB(255, 128, 1)},
		{RGB(255, 128, 1), 0, RGB(0, 0, 0)},
		{RGB(255, 255, 255), 31, RGB(31, 31, 31)},
		{RGB(255, 0, 255), 127, RGB(127, 0, 127)},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, test.in.Scale(test.brightness), "%v at %d", test.in, test.brightness)
	}
}

func TestScaledInPlace(t *testing.T) {
	l := LEDs{RGB(255, 255, 255), RGB(0, 255, 0)}
	n := l.Scaled(l, 31)
	assert.Equal(t, 2, n)
	assert.Equal(t, LEDs{RGB(31, 31, 31), RGB(0, 31, 0)}, l)

	short := NewLEDs(1)
	assert.Equal(t, 1, l.Scaled(short, 255))
}

func TestPixels(t *testing.T) {
	l := LEDs{RGB(1, 2, 3), RGB(4, 5, 6)}
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6}, l.AsPixels())
	assert.Nil(t, LEDs{}.AsPixels())

	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, l.AsPixels(), buf.Bytes())
}

func TestDraw(t *testing.T) {
	l := NewLEDs(4)
	l.SetRange(0, 4, RGB(9, 9, 9))
	l.Set(0, RGB(1, 1, 1))

	n := l.Draw(2, LEDs{RGB(7, 0, 0), RGB(8, 0, 0), RGB(9, 0, 0)})
	assert.Equal(t, 2, n)
	assert.Equal(t, LEDs{RGB(1, 1, 1), RGB(9, 9, 9), RGB(7, 0, 0), RGB(8, 0, 0)}, l)
}

func TestColorFormats(t *testing.T) {
	c := RGB(255, 0, 170)
	assert.Equal(t, "#ff00aa", c.String())
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 170, A: 255}, c.RGBA())
}
