// Package glowpad runs a two-button LED effect pad: one button cycles a
// menu, the other runs the selected item, and every polling tick the strip
// shows a rotating six color pattern while a small display shows the status.
package glowpad

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"libdb.so/glowpad/button"
	"libdb.so/glowpad/effect"
	"libdb.so/glowpad/led"
	"libdb.so/glowpad/menu"
	"libdb.so/glowpad/press"
	"libdb.so/glowpad/screen"
	"libdb.so/glowpad/state"
)

// PixelSink is the interface for LED strip outputs.
type PixelSink interface {
	// WritePixels transmits the colors scaled by brightness. The sink must
	// not keep leds after returning.
	WritePixels(leds led.LEDs, brightness uint8) error
}

// TextSink is the interface for text displays.
type TextSink interface {
	// ShowLabels replaces the screen contents with the given labels.
	ShowLabels(labels []screen.Label) error
}

// Peripherals are the inputs and outputs a Pad is wired to. Nil sinks are
// skipped. Sinks implementing io.Closer are closed when Run returns.
type Peripherals struct {
	// Menu is the button that selects the next menu item.
	Menu button.Input
	// Select is the button that runs the selected menu item.
	Select button.Input

	Pixels PixelSink
	Text   TextSink
}

// Frame is the result of a single polling tick.
type Frame struct {
	State  state.State
	Labels [3]screen.Label
	// LEDs is the unscaled color sequence. It is only valid until the next
	// Step.
	LEDs led.LEDs
	// MenuFired and SelectFired report which buttons triggered this tick.
	MenuFired   bool
	SelectFired bool
}

// Pad is the application context. It owns the shared state, the menu and
// both buttons. Step and Run must not be called concurrently; other
// goroutines may only touch the state through State.
type Pad struct {
	cfg    *Config
	logger *slog.Logger

	state     *state.Shared
	menu      *menu.Menu
	menuBtn   *button.Button
	selectBtn *button.Button
	leds      led.LEDs

	pixels        PixelSink
	text          TextSink
	pixelsFailing bool
	textFailing   bool
}

// NewPad creates a new pad.
func NewPad(cfg *Config, logger *slog.Logger, p Peripherals) (*Pad, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if p.Menu == nil || p.Select == nil {
		return nil, errors.New("both buttons must be wired")
	}

	pad := &Pad{
		cfg:    cfg,
		logger: logger,
		state:  state.New(),
		leds:   led.NewLEDs(cfg.LEDs),
		pixels: p.Pixels,
		text:   p.Text,
	}

	items := make([]menu.Item, len(cfg.Menu))
	for i, name := range cfg.Menu {
		action := menuActions[name]
		items[i] = menu.Item{
			Name:   action.label,
			Action: action.bind(pad),
		}
	}
	pad.menu = menu.New(items...)

	repeat := cfg.Buttons.Repeat.Milliseconds()
	menuTimer := press.NewTimer(repeat)
	selectTimer := press.NewTimer(repeat)

	pad.menuBtn = button.New(&menuTimer, p.Menu, pad.menu.Next)
	pad.selectBtn = button.New(&selectTimer, p.Select, pad.menu.Invoke)

	return pad, nil
}

// State returns the state shared with the pad's loop.
func (p *Pad) State() *state.Shared {
	return p.state
}

// Step runs one polling tick: both buttons are updated, then the current
// colors and labels are handed to the sinks. Sink errors are logged and do
// not interrupt the pad.
func (p *Pad) Step(elapsedMS uint32) Frame {
	var f Frame

	if p.menuBtn.Update(elapsedMS) {
		f.MenuFired = true
		p.logger.Debug(
			"menu advanced",
			"item", p.menu.Current().Name,
			"index", p.menu.Selected())
	}

	if p.selectBtn.Update(elapsedMS) {
		f.SelectFired = true
		p.logger.Debug(
			"menu item invoked",
			"item", p.menu.Current().Name)
	}

	f.State = p.state.Snapshot()
	effect.Fill(p.leds, f.State.PhaseOffset)
	f.LEDs = p.leds
	f.Labels = screen.Labels(f.State, p.cfg.OffsetSteps, p.menu.Current().Name)

	if p.pixels != nil {
		err := p.pixels.WritePixels(p.leds, f.State.Brightness)
		p.pixelsFailing = p.report("pixels", err, p.pixelsFailing)
	}

	if p.text != nil {
		err := p.text.ShowLabels(f.Labels[:])
		p.textFailing = p.report("display", err, p.textFailing)
	}

	return f
}

// report logs sink failures once per streak and returns whether the sink is
// failing.
func (p *Pad) report(sink string, err error, failing bool) bool {
	switch {
	case err != nil && !failing:
		p.logger.Warn(
			"sink failed",
			"sink", sink,
			"error", err)
	case err != nil:
		p.logger.Debug(
			"sink still failing",
			"sink", sink,
			"error", err)
	case failing:
		p.logger.Info(
			"sink recovered",
			"sink", sink)
	}
	return err != nil
}

// Run polls the pad every Config.Poll until the given context is canceled.
// The sinks are closed once polling stops.
func (p *Pad) Run(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	stopped := make(chan struct{})

	errg.Go(func() error {
		defer close(stopped)
		return p.pollLoop(ctx)
	})

	errg.Go(func() error {
		<-ctx.Done()
		<-stopped
		p.logger.Debug("closing sinks")
		if err := p.close(); err != nil {
			return errors.Wrap(err, "failed to close sinks")
		}
		return ctx.Err()
	})

	return errg.Wait()
}

func (p *Pad) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(p.cfg.Poll))
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case now := <-ticker.C:
			// Carry the sub-millisecond remainder over to the next tick.
			elapsed := now.Sub(last).Truncate(time.Millisecond)
			last = last.Add(elapsed)
			p.Step(TOMLDuration(elapsed).Milliseconds())
		}
	}
}

func (p *Pad) close() error {
	var firstErr error
	for _, sink := range []any{p.pixels, p.text} {
		c, ok := sink.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
