package usb

import "fmt"

// Speed represents a USB 1.x signaling rate.
type Speed uint8

// USB speeds decodable from a D+/D- capture.
const (
	SpeedLow  Speed = 0 // 1.5 Mbps
	SpeedFull Speed = 1 // 12 Mbps
)

// Bit durations in nanoseconds.
const (
	BitTimeFull = 1000.0 / 12.0
	BitTimeLow  = 1000.0 / 1.5
)

// ResetDuration is the minimum SE0 length, in nanoseconds, recognized as a
// bus reset.
const ResetDuration = 10e6

// String returns a human-readable representation of the speed.
func (s Speed) String() string {
	switch s {
	case SpeedLow:
		return "Low Speed (1.5 Mbps)"
	case SpeedFull:
		return "Full Speed (12 Mbps)"
	default:
		return fmt.Sprintf("Unknown Speed (%d)", s)
	}
}

// IsValid reports whether s is one of the decodable speeds.
func (s Speed) IsValid() bool {
	return s == SpeedLow || s == SpeedFull
}

// BitTime returns the duration of one bit in nanoseconds.
func (s Speed) BitTime() float64 {
	if s == SpeedLow {
		return BitTimeLow
	}
	return BitTimeFull
}

// ParseSpeed returns the Speed named by s ("low", "ls", "full" or "fs").
func ParseSpeed(s string) (Speed, error) {
	switch s {
	case "low", "ls", "LS":
		return SpeedLow, nil
	case "full", "fs", "FS":
		return SpeedFull, nil
	}
	return SpeedFull, fmt.Errorf("unknown speed %q", s)
}
