package signal

import (
	"fmt"

	"github.com/ardnew/usbdecode/usb"
)

// State is the differential line state of the bus.
type State uint8

// Bus line states.
const (
	K   State = iota // Differential 0 at full speed, 1 at low speed
	J                // Differential 1 at full speed, 0 at low speed; idle
	SE0              // Both lines low
	SE1              // Both lines high; illegal
)

// String returns the conventional name of the state.
func (s State) String() string {
	switch s {
	case K:
		return "K"
	case J:
		return "J"
	case SE0:
		return "SE0"
	case SE1:
		return "SE1"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// LineState derives the bus state from the levels of D+ and D-. The J and
// K assignment depends on the pull-up that sets the idle level for the
// speed.
func LineState(dp, dm bool, speed usb.Speed) State {
	switch {
	case dp == dm && !dp:
		return SE0
	case dp == dm:
		return SE1
	case speed == usb.SpeedLow && !dp:
		return J
	case speed == usb.SpeedLow:
		return K
	case !dp:
		return K
	default:
		return J
	}
}

// BusState is one filtered line state and the samples it spans.
type BusState struct {
	State    State
	Start    uint64  // First sample of the state
	End      uint64  // First sample of the following state
	Duration float64 // Length in nanoseconds
}

// Bit-time tolerances for a J or K state to count as data.
const (
	minBitsFull = 0.3
	maxBitsFull = 7.5
	minBitsLow  = 0.7
	maxBitsLow  = 7.3
)

// IsData reports whether the state is a J or K whose length is consistent
// with one to seven bit times at speed.
func (s BusState) IsData(speed usb.Speed) bool {
	if s.State != J && s.State != K {
		return false
	}
	bit := speed.BitTime()
	if speed == usb.SpeedLow {
		return s.Duration > minBitsLow*bit && s.Duration < maxBitsLow*bit
	}
	return s.Duration > minBitsFull*bit && s.Duration < maxBitsFull*bit
}

// NumBits returns the number of bit times the state spans at speed,
// rounded to the nearest integer.
func (s BusState) NumBits(speed usb.Speed) int {
	return int(s.Duration/speed.BitTime() + 0.5)
}

// String returns a compact representation of the state.
func (s BusState) String() string {
	return fmt.Sprintf("%s[%d,%d) %.1fns", s.State, s.Start, s.End, s.Duration)
}
