// Package ledserialtest implements a fake LED strip controller for testing
// code that talks ledserial.
package ledserialtest

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
	"libdb.so/glowpad/ledserial"
)

// Received is a command decoded by the Controller.
type Received struct {
	Command ledserial.Command
	// NumLEDs is set for ledserial.CmdInitialize.
	NumLEDs uint16
	// Pix is set for ledserial.CmdSet.
	Pix []uint8
}

// Controller is an in-memory controller usable as the serial port of a
// SerialStrip. It decodes every command written to it and queues an ack
// unless Silent is set. Reading with no queued replies returns 0, nil the
// way a serial port does once its read timeout expires.
type Controller struct {
	mu       sync.Mutex
	silent   bool
	numLEDs  uint16
	received []Received
	replies  bytes.Buffer
	closed   bool
}

// SetSilent stops the controller from acknowledging commands.
func (c *Controller) SetSilent(silent bool) {
	c.mu.Lock()
	c.silent = silent
	c.mu.Unlock()
}

// Reply queues replies to be read before the ack of the next command.
func (c *Controller) Reply(replies ...ledserial.Reply) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range replies {
		c.replies.Write(EncodeReply(r))
	}
}

// Received returns the commands decoded so far.
func (c *Controller) Received() []Received {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Received(nil), c.received...)
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Write decodes a single command frame.
func (c *Controller) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, errors.New("controller closed")
	}

	r, err := DecodeCommand(b, c.numLEDs)
	if err != nil {
		return 0, err
	}
	if r.Command == ledserial.CmdInitialize {
		c.numLEDs = r.NumLEDs
	}
	c.received = append(c.received, r)

	if !c.silent {
		c.replies.Write(EncodeReply(ledserial.Reply{Kind: ledserial.ReplyAck, Acked: r.Command}))
	}

	return len(b), nil
}

func (c *Controller) Read(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.replies.Len() == 0 {
		return 0, nil
	}
	return c.replies.Read(b)
}

func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

// DecodeCommand decodes a whole command frame. numLEDs is the strip length
// the controller was initialized with.
func DecodeCommand(frame []byte, numLEDs uint16) (Received, error) {
	if len(frame) < 5 {
		return Received{}, errors.Errorf("short frame of %d bytes", len(frame))
	}

	body, sum := frame[:len(frame)-4], binary.LittleEndian.Uint32(frame[len(frame)-4:])
	if want := ledserial.Checksum(body); sum != want {
		return Received{}, errors.Errorf("checksum mismatch: got %08x, want %08x", sum, want)
	}

	r := Received{Command: ledserial.Command(body[0])}
	body = body[1:]

	switch r.Command {
	case ledserial.CmdInitialize:
		if len(body) != 2 {
			return Received{}, errors.Errorf("initialize body has %d bytes", len(body))
		}
		r.NumLEDs = binary.LittleEndian.Uint16(body)

	case ledserial.CmdClear:
		if len(body) != 0 {
			return Received{}, errors.Errorf("clear body has %d bytes", len(body))
		}

	case ledserial.CmdSet:
		if len(body) != 3*int(numLEDs) {
			return Received{}, errors.Errorf("set body has %d bytes for %d LEDs", len(body), numLEDs)
		}
		r.Pix = append([]uint8(nil), body...)

	default:
		return Received{}, errors.Errorf("unknown command %s", r.Command)
	}

	return r, nil
}

// EncodeReply encodes a reply frame.
func EncodeReply(r ledserial.Reply) []byte {
	frame := []byte{byte(r.Kind)}

	switch r.Kind {
	case ledserial.ReplyAck:
		frame = append(frame, byte(r.Acked))
	case ledserial.ReplyError, ledserial.ReplyLog:
		frame = binary.LittleEndian.AppendUint16(frame, uint16(len(r.Message)))
		frame = append(frame, r.Message...)
	}

	return binary.LittleEndian.AppendUint32(frame, ledserial.Checksum(frame))
}
