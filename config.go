package glowpad

import (
	"encoding"
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the configuration for the glowpad daemon.
type Config struct {
	// Poll is the period of the polling loop.
	Poll TOMLDuration `toml:"poll"`
	// LEDs is the number of LEDs on the strip.
	LEDs int `toml:"leds"`
	// BrightnessStep is how much one brightness action changes the
	// brightness by.
	BrightnessStep uint8 `toml:"brightness_step"`
	// OffsetSteps is the number of palette rotation positions.
	OffsetSteps uint8 `toml:"offset_steps"`
	// Menu lists the menu actions in order. See MenuActions for the names.
	Menu []string `toml:"menu"`

	Buttons ButtonsConfig `toml:"buttons"`
	Strip   StripConfig   `toml:"strip"`
	Display DisplayConfig `toml:"display"`
}

// ButtonsConfig is the configuration for the two buttons.
type ButtonsConfig struct {
	// MenuPin is the GPIO of the button that cycles through the menu.
	MenuPin string `toml:"menu_pin"`
	// SelectPin is the GPIO of the button that runs the selected menu item.
	SelectPin string `toml:"select_pin"`
	// Repeat is the hold-repeat interval for both buttons. Zero makes a held
	// button trigger on every poll.
	Repeat TOMLDuration `toml:"repeat"`
}

// StripDriver is the kind of LED strip output.
type StripDriver string

const (
	// SPIStrip drives WS2812 LEDs directly from an SPI port.
	SPIStrip StripDriver = "spi"
	// SerialStrip sends pixels to a ledserial controller over a serial port.
	SerialStrip StripDriver = "serial"
	// NoStrip disables the LED output.
	NoStrip StripDriver = "none"
)

// StripConfig is the configuration for the LED strip output.
type StripConfig struct {
	Driver StripDriver `toml:"driver"`
	// SPIPort is the SPI port name for the spi driver. Empty picks the first.
	SPIPort string `toml:"spi_port"`
	// SPIHz is the SPI clock for the spi driver.
	SPIHz int64 `toml:"spi_hz"`
	// Device is the serial device for the serial driver, usually
	// /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial driver.
	Baud int `toml:"baud"`
}

// DisplayConfig is the configuration for the SSD1306 text display.
type DisplayConfig struct {
	Enabled bool `toml:"enabled"`
	// I2CBus is the I²C bus name. Empty picks the first.
	I2CBus string `toml:"i2c_bus"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// DefaultConfig returns the configuration of the reference board: five LEDs,
// 20ms polling and a 200ms hold-repeat.
func DefaultConfig() Config {
	return Config{
		Poll:           TOMLDuration(20 * time.Millisecond),
		LEDs:           5,
		BrightnessStep: 32,
		OffsetSteps:    8,
		Menu:           []string{"offset", "brightness"},
		Buttons: ButtonsConfig{
			MenuPin:   "GPIO17",
			SelectPin: "GPIO27",
			Repeat:    TOMLDuration(200 * time.Millisecond),
		},
		Strip: StripConfig{
			Driver: SPIStrip,
			SPIHz:  2_500_000,
			Baud:   115200,
		},
		Display: DisplayConfig{
			Enabled: true,
			Width:   128,
			Height:  32,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.LEDs < 1 {
		return errors.New("no LEDs configured")
	}

	if c.Poll.Milliseconds() == 0 {
		return fmt.Errorf("poll period %v is shorter than 1ms", c.Poll)
	}

	if len(c.Menu) == 0 {
		return errors.New("menu has no items")
	}

	for _, name := range c.Menu {
		if _, ok := menuActions[name]; !ok {
			return fmt.Errorf("unknown menu action %q", name)
		}
	}

	switch c.Strip.Driver {
	case SPIStrip, NoStrip:
	case SerialStrip:
		if c.Strip.Device == "" {
			return errors.New("serial strip needs a device")
		}
	default:
		return fmt.Errorf("unknown strip driver %q", c.Strip.Driver)
	}

	if c.Display.Enabled && (c.Display.Width < 1 || c.Display.Height < 1) {
		return fmt.Errorf("invalid display size %dx%d", c.Display.Width, c.Display.Height)
	}

	return nil
}

// TOMLDuration is a duration that can be parsed from TOML.
type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d TOMLDuration) String() string {
	return time.Duration(d).String()
}

// Milliseconds returns the duration in whole milliseconds, saturating at the
// uint32 range used by the press timers.
func (d TOMLDuration) Milliseconds() uint32 {
	ms := time.Duration(d).Milliseconds()
	switch {
	case ms < 0:
		return 0
	case ms > int64(^uint32(0)):
		return ^uint32(0)
	default:
		return uint32(ms)
	}
}

// ParseConfig parses a configuration from a reader. Keys missing from the
// input keep their DefaultConfig values. Keys that are present keep their
// value even if it is zero, so repeat = "0s" makes a held button trigger on
// every poll.
func ParseConfig(r io.Reader) (*Config, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := tree.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.fillDefaults(tree)
	return &config, nil
}

// fillDefaults restores the DefaultConfig value of every key missing from
// tree.
func (c *Config) fillDefaults(tree *toml.Tree) {
	def := DefaultConfig()
	fillDefault(tree, "poll", &c.Poll, def.Poll)
	fillDefault(tree, "leds", &c.LEDs, def.LEDs)
	fillDefault(tree, "brightness_step", &c.BrightnessStep, def.BrightnessStep)
	fillDefault(tree, "offset_steps", &c.OffsetSteps, def.OffsetSteps)
	fillDefault(tree, "menu", &c.Menu, def.Menu)
	fillDefault(tree, "buttons.menu_pin", &c.Buttons.MenuPin, def.Buttons.MenuPin)
	fillDefault(tree, "buttons.select_pin", &c.Buttons.SelectPin, def.Buttons.SelectPin)
	fillDefault(tree, "buttons.repeat", &c.Buttons.Repeat, def.Buttons.Repeat)
	fillDefault(tree, "strip.driver", &c.Strip.Driver, def.Strip.Driver)
	fillDefault(tree, "strip.spi_port", &c.Strip.SPIPort, def.Strip.SPIPort)
	fillDefault(tree, "strip.spi_hz", &c.Strip.SPIHz, def.Strip.SPIHz)
	fillDefault(tree, "strip.device", &c.Strip.Device, def.Strip.Device)
	fillDefault(tree, "strip.baud", &c.Strip.Baud, def.Strip.Baud)
	fillDefault(tree, "display.enabled", &c.Display.Enabled, def.Display.Enabled)
	fillDefault(tree, "display.i2c_bus", &c.Display.I2CBus, def.Display.I2CBus)
	fillDefault(tree, "display.width", &c.Display.Width, def.Display.Width)
	fillDefault(tree, "display.height", &c.Display.Height, def.Display.Height)
}

func fillDefault[T any](tree *toml.Tree, key string, dst *T, def T) {
	if !tree.Has(key) {
		*dst = def
	}
}
