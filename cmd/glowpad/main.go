package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"libdb.so/glowpad"
	"libdb.so/glowpad/internal/hw"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var (
	config  = "glowpad.toml"
	verbose = false
)

func init() {
	pflag.StringVarP(&config, "config", "c", config, "configuration file")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	p, err := openPeripherals(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pad, err := newPad(cfg, p)
	if err != nil {
		return err
	}

	if err := pad.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("pad failed: %w", err)
	}

	return nil
}

func openPeripherals(cfg *glowpad.Config) (p glowpad.Peripherals, err error) {
	defer func() {
		if err != nil {
			closePeripherals(p)
		}
	}()

	menuPin, err := hw.OpenPin(cfg.Buttons.MenuPin)
	if err != nil {
		return p, fmt.Errorf("menu button: %w", err)
	}
	p.Menu = menuPin

	selectPin, err := hw.OpenPin(cfg.Buttons.SelectPin)
	if err != nil {
		return p, fmt.Errorf("select button: %w", err)
	}
	p.Select = selectPin

	switch cfg.Strip.Driver {
	case glowpad.SPIStrip:
		freq := physic.Frequency(cfg.Strip.SPIHz) * physic.Hertz
		s, err := hw.OpenStrip(cfg.Strip.SPIPort, cfg.LEDs, freq)
		if err != nil {
			return p, fmt.Errorf("LED strip: %w", err)
		}
		p.Pixels = s

	case glowpad.SerialStrip:
		s, err := hw.OpenSerialStrip(cfg.Strip.Device, cfg.Strip.Baud, cfg.LEDs, slog.Default())
		if err != nil {
			return p, fmt.Errorf("LED strip: %w", err)
		}
		p.Pixels = s
	}

	if cfg.Display.Enabled {
		d, err := hw.OpenDisplay(cfg.Display.I2CBus, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			return p, fmt.Errorf("display: %w", err)
		}
		p.Text = d
	}

	return p, nil
}

// newPad creates the pad, closing the peripherals if that fails.
func newPad(cfg *glowpad.Config, p glowpad.Peripherals) (*glowpad.Pad, error) {
	pad, err := glowpad.NewPad(cfg, slog.Default(), p)
	if err != nil {
		closePeripherals(p)
		return nil, fmt.Errorf("failed to create pad: %w", err)
	}
	return pad, nil
}

// closePeripherals closes the sinks of p that were opened. Errors are logged
// since the caller is already failing.
func closePeripherals(p glowpad.Peripherals) {
	for _, sink := range []any{p.Pixels, p.Text} {
		c, ok := sink.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			slog.Warn("failed to close sink", "error", err)
		}
	}
}

func readConfig() (*glowpad.Config, error) {
	f, err := os.Open(config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("config file not found, using defaults", "path", config)
			cfg := glowpad.DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return glowpad.ParseConfig(f)
}
