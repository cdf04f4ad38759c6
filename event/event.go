package event

import (
	"fmt"

	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/signal"
)

// Span is an inclusive range of sample numbers.
type Span struct {
	Start, End uint64
}

// Bounds returns the span itself. Embedding Span gives every event its
// Bounds method.
func (s Span) Bounds() Span {
	return s
}

// Event is one decoded unit.
type Event interface {
	Kind() Kind
	Bounds() Span
}

// Signal is a filtered bus state.
type Signal struct {
	Span
	State signal.State
}

// Sync is the SYNC field of a packet.
type Sync struct {
	Span
}

// PID is the packet identifier field. Flag records the packet's role in a
// control transfer.
type PID struct {
	Span
	PID  packet.PID
	Flag Flag
}

// FrameNum is the frame number field of a SOF packet.
type FrameNum struct {
	Span
	Frame uint16
}

// AddrEndp is the address and endpoint field of a token packet.
type AddrEndp struct {
	Span
	Address  uint8
	Endpoint uint8
}

// EOP is the end of packet signal.
type EOP struct {
	Span
}

// Reset is a bus reset.
type Reset struct {
	Span
}

// KeepAlive is a low speed keep-alive strobe.
type KeepAlive struct {
	Span
}

// CRC5 is the token CRC field.
type CRC5 struct {
	Span
	Received uint8
	Computed uint8
}

// Valid reports whether the received CRC matches.
func (c CRC5) Valid() bool {
	return c.Received == c.Computed
}

// CRC16 is the data packet CRC field.
type CRC16 struct {
	Span
	Received uint16
	Computed uint16
}

// Valid reports whether the received CRC matches.
func (c CRC16) Valid() bool {
	return c.Received == c.Computed
}

// Byte is one raw byte of a packet.
type Byte struct {
	Span
	Value byte
}

// Error marks a region of data states that did not decode.
type Error struct {
	Span
	Err error
}

// Field is one decoded control transfer field.
type Field struct {
	Span
	Address uint8
	Name    string
	Width   int // bytes
	Value   uint32
	Format  Format
	Flag    Flag
}

// HIDItem is one short item of a HID report descriptor. Item holds the
// prefix and data bytes and is nil while the item is incomplete.
type HIDItem struct {
	Span
	Address   uint8
	Item      []byte
	Indent    int
	UsagePage uint16
	Flag      Flag
}

func (Signal) Kind() Kind    { return KindSignal }
func (Sync) Kind() Kind      { return KindSync }
func (PID) Kind() Kind       { return KindPID }
func (FrameNum) Kind() Kind  { return KindFrameNum }
func (AddrEndp) Kind() Kind  { return KindAddrEndp }
func (EOP) Kind() Kind       { return KindEOP }
func (Reset) Kind() Kind     { return KindReset }
func (KeepAlive) Kind() Kind { return KindKeepAlive }
func (CRC5) Kind() Kind      { return KindCRC5 }
func (CRC16) Kind() Kind     { return KindCRC16 }
func (Byte) Kind() Kind      { return KindByte }
func (Error) Kind() Kind     { return KindError }
func (Field) Kind() Kind     { return KindField }
func (HIDItem) Kind() Kind   { return KindHIDItem }

// String returns a compact description of the field.
func (f Field) String() string {
	s := fmt.Sprintf("%s=0x%0*X", f.Name, 2*f.Width, f.Value)
	if f.Flag != FlagNone {
		s += " [" + f.Flag.String() + "]"
	}
	return s
}
