package glowpad

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleConfig = `
poll = "10ms"
leds = 12
brightness_step = 16
offset_steps = 6
menu = ["brightness", "offset", "reset"]

[buttons]
menu_pin = "GPIO5"
select_pin = "GPIO6"
repeat = "150ms"

[strip]
driver = "serial"
device = "/dev/ttyACM0"
baud = 921600

[display]
enabled = true
i2c_bus = "1"
width = 128
height = 64
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(exampleConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10*time.Millisecond, time.Duration(cfg.Poll))
	assert.Equal(t, 12, cfg.LEDs)
	assert.Equal(t, uint8(16), cfg.BrightnessStep)
	assert.Equal(t, uint8(6), cfg.OffsetSteps)
	assert.Equal(t, []string{"brightness", "offset", "reset"}, cfg.Menu)

	assert.Equal(t, ButtonsConfig{
		MenuPin:   "GPIO5",
		SelectPin: "GPIO6",
		Repeat:    TOMLDuration(150 * time.Millisecond),
	}, cfg.Buttons)
	assert.Equal(t, uint32(150), cfg.Buttons.Repeat.Milliseconds())

	assert.Equal(t, SerialStrip, cfg.Strip.Driver)
	assert.Equal(t, "/dev/ttyACM0", cfg.Strip.Device)
	assert.Equal(t, 921600, cfg.Strip.Baud)

	assert.Equal(t, DisplayConfig{Enabled: true, I2CBus: "1", Width: 128, Height: 64}, cfg.Display)
}

func TestParseConfigBadDuration(t *testing.T) {
	_, err := ParseConfig(strings.NewReader(`poll = "soon"`))
	assert.Error(t, err)
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"no leds", func(c *Config) { c.LEDs = 0 }, "no LEDs"},
		{"sub-millisecond poll", func(c *Config) { c.Poll = TOMLDuration(time.Microsecond) }, "shorter than 1ms"},
		{"empty menu", func(c *Config) { c.Menu = nil }, "menu has no items"},
		{"unknown action", func(c *Config) { c.Menu = []string{"offset", "explode"} }, `"explode"`},
		{"serial without device", func(c *Config) { c.Strip.Driver = SerialStrip }, "needs a device"},
		{"unknown driver", func(c *Config) { c.Strip.Driver = "dmx" }, "unknown strip driver"},
		{"bad display", func(c *Config) { c.Display.Height = 0 }, "invalid display size"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), test.errMsg)
		})
	}
}

func TestMenuActions(t *testing.T) {
	assert.Equal(t,
		[]string{"brightness", "brightness_up", "offset", "offset_back", "reset"},
		MenuActions())
}

func TestTOMLDurationMilliseconds(t *testing.T) {
	assert.Equal(t, uint32(0), TOMLDuration(-time.Second).Milliseconds())
	assert.Equal(t, uint32(1), TOMLDuration(1500*time.Microsecond).Milliseconds())
	assert.Equal(t, ^uint32(0), TOMLDuration(2000*time.Hour).Milliseconds())
}

func TestParseConfigMissingKeysUseDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader("leds = 3\n[strip]\ndriver = \"none\"\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.LEDs = 3
	want.Strip.Driver = NoStrip
	assert.Equal(t, &want, cfg)
}

func TestParseConfigKeepsZeroRepeat(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader("[buttons]\nrepeat = \"0s\"\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.Buttons.Repeat)

	p := newTestPad(t, *cfg, discard)
	p.selectPressed = true
	for i := 0; i < 3; i++ {
		p.Step(20)
	}
	assert.Equal(t, uint8(3), p.State().Snapshot().PhaseOffset, "held select triggers every tick")
}

func TestParseConfigRejectsZeroPoll(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`poll = "0s"`))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "shorter than 1ms")
}
