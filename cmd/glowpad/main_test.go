package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/glowpad"
	"libdb.so/glowpad/button"
	"libdb.so/glowpad/led"
	"libdb.so/glowpad/screen"
)

type closingSink struct {
	closed bool
}

func (s *closingSink) WritePixels(led.LEDs, uint8) error { return nil }
func (s *closingSink) ShowLabels([]screen.Label) error   { return nil }
func (s *closingSink) Close() error                      { s.closed = true; return nil }

func TestNewPadClosesSinksOnError(t *testing.T) {
	pixels := &closingSink{}
	text := &closingSink{}
	released := button.InputFunc(func() bool { return false })

	cfg := glowpad.DefaultConfig()
	cfg.Menu = nil

	_, err := newPad(&cfg, glowpad.Peripherals{
		Menu:   released,
		Select: released,
		Pixels: pixels,
		Text:   text,
	})
	require.Error(t, err)
	assert.True(t, pixels.closed)
	assert.True(t, text.closed)
}

func TestNewPadKeepsSinksOpen(t *testing.T) {
	pixels := &closingSink{}
	released := button.InputFunc(func() bool { return false })

	cfg := glowpad.DefaultConfig()
	_, err := newPad(&cfg, glowpad.Peripherals{
		Menu:   released,
		Select: released,
		Pixels: pixels,
	})
	require.NoError(t, err)
	assert.False(t, pixels.closed)
}
