// Package hw implements the pad's inputs and sinks on top of periph.io
// hardware: GPIO buttons, an SPI or serial LED strip and an SSD1306 display.
package hw

import (
	"github.com/pkg/errors"
	"libdb.so/glowpad/button"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pin is a push button wired between a GPIO and ground. The internal pull-up
// keeps the line high until the button pulls it low.
type Pin struct {
	pin gpio.PinIn
}

var _ button.Input = (*Pin)(nil)

// OpenPin looks up the named GPIO and configures it as a pulled-up input.
func OpenPin(name string) (*Pin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("unknown GPIO %q", name)
	}
	return NewPin(p)
}

// NewPin configures p as a pulled-up input.
func NewPin(p gpio.PinIn) (*Pin, error) {
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, errors.Wrapf(err, "failed to configure %s as input", p)
	}
	return &Pin{pin: p}, nil
}

// Pressed implements button.Input. The button is active-low.
func (p *Pin) Pressed() bool {
	return p.pin.Read() == gpio.Low
}

// String returns the pin name.
func (p *Pin) String() string {
	return p.pin.String()
}
