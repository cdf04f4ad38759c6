package decoder

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/usb"
)

// Level selects how far decoding proceeds.
type Level uint8

// Decode levels.
const (
	LevelSignals          Level = iota // Filtered bus states only
	LevelBytes                         // Raw packet bytes, SYNC through CRC
	LevelPackets                       // Packet fields
	LevelControlTransfers              // Control transfer stages and descriptors
)

// String returns the name accepted by ParseLevel.
func (l Level) String() string {
	switch l {
	case LevelSignals:
		return "signals"
	case LevelBytes:
		return "bytes"
	case LevelPackets:
		return "packets"
	case LevelControlTransfers:
		return "control"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// IsValid reports whether l is a known level.
func (l Level) IsValid() bool {
	return l <= LevelControlTransfers
}

// ParseLevel returns the Level named by s.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "signals", "signal":
		return LevelSignals, nil
	case "bytes", "byte":
		return LevelBytes, nil
	case "packets", "packet":
		return LevelPackets, nil
	case "control", "transfers", "control-transfers":
		return LevelControlTransfers, nil
	}
	return LevelControlTransfers, fmt.Errorf("%w: unknown decode level %q", pkg.ErrInvalidParameter, s)
}

// MinSampleRate is the lowest sample rate at which full speed bit timing
// can be recovered.
const MinSampleRate = 24_000_000

// Config holds decoder settings.
type Config struct {
	// SampleRate is the capture sample rate in Hz.
	SampleRate uint64

	// Speed is the bus speed set by the device pull-up.
	Speed usb.Speed

	// Level selects the decode depth.
	Level Level

	// KeepAliveResetsPipes makes a low speed keep-alive discard every
	// control pipe, as a bus reset does.
	KeepAliveResetsPipes bool

	// Progress, if set, is called with the end sample of every bus state.
	Progress func(sample uint64)
}

// DefaultConfig returns a full speed, control transfer level configuration
// with no sample rate.
func DefaultConfig() Config {
	return Config{
		Speed:                usb.SpeedFull,
		Level:                LevelControlTransfers,
		KeepAliveResetsPipes: true,
	}
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var err error
	switch {
	case c.SampleRate == 0:
		err = multierr.Append(err, errors.New("sample rate is zero"))
	case c.SampleRate < MinSampleRate:
		err = multierr.Append(err, fmt.Errorf("sample rate %d Hz below minimum %d Hz", c.SampleRate, MinSampleRate))
	}
	if !c.Speed.IsValid() {
		err = multierr.Append(err, fmt.Errorf("unknown speed %d", c.Speed))
	}
	if !c.Level.IsValid() {
		err = multierr.Append(err, fmt.Errorf("unknown level %v", c.Level))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", pkg.ErrInvalidParameter, err)
	}
	return nil
}
