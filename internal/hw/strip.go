package hw

import (
	"github.com/pkg/errors"
	"libdb.so/glowpad/led"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// DefaultSPIFreq is the SPI clock used to emulate the WS2812 NRZ timing.
const DefaultSPIFreq = 2500 * physic.KiloHertz

// Strip is a WS2812 strip driven through an SPI port.
type Strip struct {
	dev    *nrzled.Dev
	port   spi.Port
	scaled led.LEDs
}

// OpenStrip opens the named SPI port (empty for the first one available) and
// drives numLEDs pixels through it.
func OpenStrip(port string, numLEDs int, freq physic.Frequency) (*Strip, error) {
	p, err := spireg.Open(port)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SPI port")
	}

	s, err := NewStrip(p, numLEDs, freq)
	if err != nil {
		p.Close()
		return nil, err
	}

	return s, nil
}

// NewStrip drives numLEDs pixels through p. If p is an io.Closer, Close
// closes it.
func NewStrip(p spi.Port, numLEDs int, freq physic.Frequency) (*Strip, error) {
	if freq == 0 {
		freq = DefaultSPIFreq
	}

	dev, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: numLEDs,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create nrzled device")
	}

	return &Strip{
		dev:    dev,
		port:   p,
		scaled: led.NewLEDs(numLEDs),
	}, nil
}

// WritePixels scales leds by brightness and transmits them.
func (s *Strip) WritePixels(leds led.LEDs, brightness uint8) error {
	n := leds.Scaled(s.scaled, brightness)
	if _, err := s.dev.Write(s.scaled[:n].AsPixels()); err != nil {
		return errors.Wrap(err, "failed to write pixels")
	}
	return nil
}

// Close turns the strip off and releases the SPI port.
func (s *Strip) Close() error {
	err := s.dev.Halt()
	if c, ok := s.port.(spi.PortCloser); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
