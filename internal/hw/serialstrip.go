package hw

import (
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"libdb.so/glowpad/led"
	"libdb.so/glowpad/ledserial"
)

// AckTimeout is how long the serial strip waits for a controller to
// acknowledge a command.
const AckTimeout = 100 * time.Millisecond

// SerialStrip is an LED strip behind a controller speaking the ledserial
// protocol over a serial port.
type SerialStrip struct {
	port    io.ReadWriteCloser
	enc     *ledserial.Encoder
	dec     *ledserial.Decoder
	logger  *slog.Logger
	scaled  led.LEDs
	started bool
}

// OpenSerialStrip opens the serial device at the given baud rate.
func OpenSerialStrip(device string, baud, numLEDs int, logger *slog.Logger) (*SerialStrip, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open serial port")
	}

	if err := port.SetReadTimeout(AckTimeout); err != nil {
		port.Close()
		return nil, errors.Wrap(err, "failed to set read timeout")
	}

	return NewSerialStrip(port, numLEDs, logger), nil
}

// NewSerialStrip speaks ledserial over port. A read from port that returns
// no data and no error, as go.bug.st/serial does once its read timeout
// expires, counts as a missing reply.
func NewSerialStrip(port io.ReadWriteCloser, numLEDs int, logger *slog.Logger) *SerialStrip {
	return &SerialStrip{
		port:   port,
		enc:    ledserial.NewEncoder(port),
		dec:    ledserial.NewDecoder(port),
		logger: logger,
		scaled: led.NewLEDs(numLEDs),
	}
}

// WritePixels scales leds by brightness and sends them to the controller.
// The controller is initialized on the first successful call.
func (s *SerialStrip) WritePixels(leds led.LEDs, brightness uint8) error {
	if !s.started {
		err := s.enc.Initialize(uint16(len(s.scaled)))
		if err == nil {
			err = s.waitAck(ledserial.CmdInitialize)
		}
		if err != nil {
			return errors.Wrap(err, "failed to initialize controller")
		}
		s.started = true
	}

	n := leds.Scaled(s.scaled, brightness)
	// The controller expects a full strip.
	for i := n; i < len(s.scaled); i++ {
		s.scaled[i] = led.RGBColor{}
	}

	if err := s.enc.Set(s.scaled); err != nil {
		return err
	}
	return s.waitAck(ledserial.CmdSet)
}

// Close clears the strip and closes the port.
func (s *SerialStrip) Close() error {
	var err error
	if s.started {
		err = s.enc.Clear()
		if err == nil {
			err = s.waitAck(ledserial.CmdClear)
		}
	}
	if cerr := s.port.Close(); err == nil {
		err = cerr
	}
	return err
}

// waitAck reads replies until cmd is acknowledged. Log replies are passed
// on to the logger. It gives up after AckTimeout even if the controller keeps
// talking.
func (s *SerialStrip) waitAck(cmd ledserial.Command) error {
	deadline := time.Now().Add(AckTimeout)

	for {
		r, err := s.dec.ReadReply()
		if err != nil {
			if errors.Is(err, ledserial.ErrTimeout) {
				return errors.Wrapf(err, "controller did not acknowledge %s command", cmd)
			}
			return errors.Wrap(err, "failed to read reply")
		}

		switch r.Kind {
		case ledserial.ReplyAck:
			if r.Acked == cmd {
				return nil
			}
			s.logger.Debug(
				"ignoring stale ack from controller",
				"acked", r.Acked,
				"waiting_for", cmd)

		case ledserial.ReplyLog:
			s.logger.Info(
				"received log from controller",
				"message", r.Message)

		case ledserial.ReplyError:
			return errors.Errorf("controller reported error: %s", r.Message)

		case ledserial.ReplyPanic:
			return errors.New("controller panicked")
		}

		if time.Now().After(deadline) {
			return errors.Wrapf(ledserial.ErrTimeout, "controller did not acknowledge %s command", cmd)
		}
	}
}
