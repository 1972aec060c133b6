// Command glowpad is the firmware for a Raspberry Pi Pico with two buttons,
// a short WS2812 strip and a 128x32 SSD1306 display.
package main

import (
	"image/color"
	"machine"
	"runtime/interrupt"
	"time"

	"libdb.so/glowpad/button"
	"libdb.so/glowpad/effect"
	"libdb.so/glowpad/led"
	"libdb.so/glowpad/menu"
	"libdb.so/glowpad/press"
	"libdb.so/glowpad/screen"
	"libdb.so/glowpad/state"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/drivers/ws2812"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	numLEDs        = 5
	poll           = 20 * time.Millisecond
	holdIntervalMS = 200
	offsetSteps    = 8
	brightnessStep = 32
)

var (
	menuPin   = machine.GPIO4
	selectPin = machine.GPIO5
	stripPin  = machine.GPIO15
)

var white = color.RGBA{255, 255, 255, 255}

// activeLow is a button between the pin and ground.
type activeLow machine.Pin

func (p activeLow) Pressed() bool { return !machine.Pin(p).Get() }

func main() {
	menuPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	selectPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	stripPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	strip := ws2812.New(stripPin)

	machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GPIO0,
		SCL:       machine.GPIO1,
	})

	display := ssd1306.NewI2C(machine.I2C0)
	display.Configure(ssd1306.Config{
		Width:    128,
		Height:   32,
		Address:  0x3C,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	display.ClearDisplay()

	shared := state.New()
	items := menu.New(
		menu.Item{Name: "Offset", Action: func() { shared.StepOffset(offsetSteps) }},
		menu.Item{Name: "Brightness", Action: func() { shared.DimBy(brightnessStep) }},
	)

	menuTimer := press.NewTimer(holdIntervalMS)
	selectTimer := press.NewTimer(holdIntervalMS)
	menuButton := button.New(&menuTimer, activeLow(menuPin), items.Next)
	selectButton := button.New(&selectTimer, activeLow(selectPin), items.Invoke)

	leds := led.NewLEDs(numLEDs)
	var colors [numLEDs]color.RGBA

	last := time.Now()
	for {
		elapsed := time.Since(last).Truncate(time.Millisecond)
		last = last.Add(elapsed)
		elapsedMS := uint32(elapsed / time.Millisecond)

		menuButton.Update(elapsedMS)
		selectButton.Update(elapsedMS)

		s := shared.Snapshot()
		effect.Fill(leds, s.PhaseOffset)
		leds.Scaled(leds, s.Brightness)
		for i, c := range leds {
			colors[i] = c.RGBA()
		}
		critical(func() { strip.WriteColors(colors[:]) })

		display.ClearBuffer()
		for _, l := range screen.Labels(s, offsetSteps, items.Current().Name) {
			// tinyfont draws from the baseline.
			tinyfont.WriteLine(display, &proggy.TinySZ8pt7b, int16(l.X), int16(l.Y)+8, l.Text, white)
		}
		display.Display()

		time.Sleep(poll)
	}
}

func critical(f func()) {
	mask := interrupt.Disable()
	f()
	interrupt.Restore(mask)
}
