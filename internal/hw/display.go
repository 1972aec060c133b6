package hw

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"libdb.so/glowpad/screen"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Display is an SSD1306 OLED on an I²C bus showing text labels.
type Display struct {
	dev   *ssd1306.Dev
	bus   i2c.Bus
	frame *image1bit.VerticalLSB
}

// OpenDisplay opens the named I²C bus (empty for the first one available)
// and initializes a width x height display on it.
func OpenDisplay(bus string, width, height int) (*Display, error) {
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open I2C bus")
	}

	d, err := NewDisplay(b, width, height)
	if err != nil {
		b.Close()
		return nil, err
	}

	return d, nil
}

// NewDisplay initializes a width x height display on bus. If bus is an
// i2c.BusCloser, Close closes it.
func NewDisplay(bus i2c.Bus, width, height int) (*Display, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{
		W: width,
		H: height,
		// 128x32 panels wire their rows sequentially.
		Sequential: height == 32,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize ssd1306")
	}

	return &Display{
		dev:   dev,
		bus:   bus,
		frame: image1bit.NewVerticalLSB(dev.Bounds()),
	}, nil
}

// ShowLabels clears the screen and draws the labels.
func (d *Display) ShowLabels(labels []screen.Label) error {
	DrawLabels(d.frame, labels)
	if err := d.dev.Draw(d.dev.Bounds(), d.frame, image.Point{}); err != nil {
		return errors.Wrap(err, "failed to draw frame")
	}
	return nil
}

// Close blanks the display and releases the bus.
func (d *Display) Close() error {
	err := d.dev.Halt()
	if c, ok := d.bus.(i2c.BusCloser); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// DrawLabels clears dst and draws each label with its top-left corner at the
// label position.
func DrawLabels(dst draw.Image, labels []screen.Label) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(image1bit.Off), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(image1bit.On),
		Face: face,
	}
	for _, l := range labels {
		d.Dot = fixed.P(l.X, l.Y+ascent)
		d.DrawString(l.Text)
	}
}
