// Package ledserial implements the pad side of the serial protocol spoken
// with an external LED strip controller.
//
// The pad sends commands and the controller answers every command with zero
// or more log replies followed by an ack, or with an error or panic reply.
// Every frame is a type byte, a body and a little-endian CRC32 (IEEE) of the
// type and body. Commands are written in a single Write call.
package ledserial

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"slices"

	"github.com/pkg/errors"
	"libdb.so/glowpad/led"
)

var byteOrder = binary.LittleEndian

// ErrTimeout is returned when the controller sends nothing. A serial port
// reports an expired read timeout as a read of zero bytes without error.
var ErrTimeout = errors.New("ledserial: read timed out")

// Command is the type of a frame sent by the pad.
type Command uint8

const (
	// CmdInitialize carries the strip length as a uint16.
	CmdInitialize Command = iota
	// CmdClear turns the strip off.
	CmdClear
	// CmdSet carries three bytes per LED in R, G, B order.
	CmdSet
)

func (c Command) String() string {
	switch c {
	case CmdInitialize:
		return "initialize"
	case CmdClear:
		return "clear"
	case CmdSet:
		return "set"
	default:
		return fmt.Sprintf("Command(%d)", c)
	}
}

// ReplyKind is the type of a frame sent by the controller.
type ReplyKind uint8

const (
	// ReplyError carries a uint16 length and a message.
	ReplyError ReplyKind = iota
	// ReplyPanic has no body.
	ReplyPanic
	// ReplyLog carries a uint16 length and a message.
	ReplyLog
	// ReplyAck carries the acknowledged Command.
	ReplyAck
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyError:
		return "error"
	case ReplyPanic:
		return "panic"
	case ReplyLog:
		return "log"
	case ReplyAck:
		return "ack"
	default:
		return fmt.Sprintf("ReplyKind(%d)", k)
	}
}

// Reply is a frame sent by the controller.
type Reply struct {
	Kind ReplyKind
	// Acked is the acknowledged command of a ReplyAck.
	Acked Command
	// Message is the text of a ReplyError or ReplyLog.
	Message string
}

// Checksum returns the frame checksum of the given type byte and body.
func Checksum(frame []byte) uint32 {
	return crc32.ChecksumIEEE(frame)
}

// Encoder writes commands. Its frame buffer is reused, so sending a strip of
// the same length again does not allocate.
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder creates a new encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Initialize tells the controller how many LEDs the strip has.
func (e *Encoder) Initialize(numLEDs uint16) error {
	e.begin(CmdInitialize)
	e.buf = byteOrder.AppendUint16(e.buf, numLEDs)
	return e.flush()
}

// Clear turns every LED off.
func (e *Encoder) Clear() error {
	e.begin(CmdClear)
	return e.flush()
}

// Set shows leds. The controller expects exactly as many LEDs as it was
// initialized with.
func (e *Encoder) Set(leds led.LEDs) error {
	e.begin(CmdSet)
	e.buf = append(e.buf, leds.AsPixels()...)
	return e.flush()
}

func (e *Encoder) begin(cmd Command) {
	e.buf = append(e.buf[:0], byte(cmd))
}

func (e *Encoder) flush() error {
	cmd := Command(e.buf[0])
	e.buf = byteOrder.AppendUint32(e.buf, Checksum(e.buf))
	if _, err := e.w.Write(e.buf); err != nil {
		return errors.Wrapf(err, "failed to write %s command", cmd)
	}
	return nil
}

// Decoder reads replies.
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder creates a new decoder reading from r. Reads from r that return
// no data and no error fail with ErrTimeout.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: timeoutReader{r}}
}

// ReadReply reads the next reply.
func (d *Decoder) ReadReply() (Reply, error) {
	d.buf = d.buf[:0]
	if err := d.next(1); err != nil {
		return Reply{}, errors.Wrap(err, "failed to read reply kind")
	}

	r := Reply{Kind: ReplyKind(d.buf[0])}

	switch r.Kind {
	case ReplyAck:
		if err := d.next(1); err != nil {
			return Reply{}, errors.Wrap(err, "failed to read acked command")
		}
		r.Acked = Command(d.buf[1])

	case ReplyError, ReplyLog:
		if err := d.next(2); err != nil {
			return Reply{}, errors.Wrapf(err, "failed to read %s message length", r.Kind)
		}
		if err := d.next(int(byteOrder.Uint16(d.buf[1:]))); err != nil {
			return Reply{}, errors.Wrapf(err, "failed to read %s message", r.Kind)
		}
		r.Message = string(d.buf[3:])

	case ReplyPanic:

	default:
		return Reply{}, errors.Errorf("unknown reply kind %s", r.Kind)
	}

	want := Checksum(d.buf)
	if err := d.next(4); err != nil {
		return Reply{}, errors.Wrap(err, "failed to read reply checksum")
	}
	if got := byteOrder.Uint32(d.buf[len(d.buf)-4:]); got != want {
		return Reply{}, errors.Errorf("%s reply checksum mismatch: got %08x, want %08x", r.Kind, got, want)
	}

	return r, nil
}

// next appends the next n bytes of the stream to the frame buffer.
func (d *Decoder) next(n int) error {
	start := len(d.buf)
	d.buf = slices.Grow(d.buf, n)[:start+n]
	_, err := io.ReadFull(d.r, d.buf[start:])
	return err
}

type timeoutReader struct {
	r io.Reader
}

func (t timeoutReader) Read(b []byte) (int, error) {
	n, err := t.r.Read(b)
	if n == 0 && err == nil && len(b) > 0 {
		return 0, ErrTimeout
	}
	return n, err
}
