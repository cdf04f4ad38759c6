package packet

import "fmt"

// PID is the packet identifier byte, check nibble included.
type PID uint8

// Low-speed and full-speed packet identifiers.
const (
	PIDOut   PID = 0xE1
	PIDIn    PID = 0x69
	PIDSOF   PID = 0xA5
	PIDSetup PID = 0x2D
	PIDData0 PID = 0xC3
	PIDData1 PID = 0x4B
	PIDAck   PID = 0xD2
	PIDNak   PID = 0x5A
	PIDStall PID = 0x1E
	PIDPre   PID = 0x3C
)

// String returns the USB name of the PID.
func (p PID) String() string {
	switch p {
	case PIDOut:
		return "OUT"
	case PIDIn:
		return "IN"
	case PIDSOF:
		return "SOF"
	case PIDSetup:
		return "SETUP"
	case PIDData0:
		return "DATA0"
	case PIDData1:
		return "DATA1"
	case PIDAck:
		return "ACK"
	case PIDNak:
		return "NAK"
	case PIDStall:
		return "STALL"
	case PIDPre:
		return "PRE"
	default:
		return fmt.Sprintf("PID(0x%02X)", uint8(p))
	}
}

// IsToken reports whether p is IN, OUT or SETUP.
func (p PID) IsToken() bool {
	return p == PIDIn || p == PIDOut || p == PIDSetup
}

// IsData reports whether p is DATA0 or DATA1.
func (p PID) IsData() bool {
	return p == PIDData0 || p == PIDData1
}

// IsHandshake reports whether p is ACK, NAK or STALL.
func (p PID) IsHandshake() bool {
	return p == PIDAck || p == PIDNak || p == PIDStall
}

// ValidLength reports whether a packet of n bytes, SYNC included, is
// well formed for p.
func (p PID) ValidLength(n int) bool {
	switch {
	case p.IsToken(), p == PIDSOF:
		return n == 4
	case p.IsData():
		return n >= 4
	case p.IsHandshake(), p == PIDPre:
		return n == 2
	}
	return false
}
