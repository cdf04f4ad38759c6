package packet

import (
	"fmt"

	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/usb"
)

// Field offsets, in bits from the start of SYNC.
const (
	SyncBits   = 8
	pidBit     = 8
	payloadBit = 16
	tokenBits  = 11
)

// Packet is one assembled packet. It is immutable once returned by the
// assembler.
type Packet struct {
	// Data holds every byte from SYNC through the CRC.
	Data []byte

	// BitStarts holds the sample at which each retained bit begins, plus
	// one final entry marking the end of the last bit. Its length is
	// always 8*len(Data)+1.
	BitStarts []uint64

	// StuffBits holds the samples of the stuff bits that were removed.
	StuffBits []uint64

	// Speed is the bus speed the packet was decoded at.
	Speed usb.Speed

	// Start and End bound the packet including its EOP.
	Start, End uint64
}

// MalformedError describes a region of data states that did not form a
// valid packet. Cause, when set, names the line condition that ended it.
type MalformedError struct {
	Start, End uint64
	Bits       int
	Cause      error
}

// Error implements error.
func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("malformed packet at samples [%d, %d]: %d bits", e.Start, e.End, e.Bits)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns [pkg.ErrMalformedPacket] and Cause.
func (e *MalformedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{pkg.ErrMalformedPacket}
	}
	return []error{pkg.ErrMalformedPacket, e.Cause}
}

// CheckCRC returns an error wrapping [pkg.ErrCRC] if the received CRC
// does not match the computed one.
func (p *Packet) CheckCRC() error {
	if p.CRCValid() {
		return nil
	}
	return fmt.Errorf("%w: %s received %#x, computed %#x",
		pkg.ErrCRC, p.PID(), p.CRC(), p.ComputedCRC())
}

// New builds a packet from wire bytes, SYNC included, with bits spaced
// samplesPerBit apart beginning at start. It is meant for sources that
// already deliver whole packets.
func New(data []byte, start, samplesPerBit uint64, speed usb.Speed) *Packet {
	p := &Packet{
		Data:      append([]byte(nil), data...),
		BitStarts: make([]uint64, len(data)*8+1),
		Speed:     speed,
		Start:     start,
	}
	for i := range p.BitStarts {
		p.BitStarts[i] = start + uint64(i)*samplesPerBit
	}
	p.End = p.BitStarts[len(p.BitStarts)-1] + 3*samplesPerBit
	return p
}

// PID returns the packet identifier.
func (p *Packet) PID() PID {
	if len(p.Data) < 2 {
		return 0
	}
	return PID(p.Data[1])
}

// lastWord returns the final two bytes, received LSB first.
func (p *Packet) lastWord() uint16 {
	n := len(p.Data)
	if n < 4 {
		return 0
	}
	return uint16(p.Data[n-1])<<8 | uint16(p.Data[n-2])
}

// Address returns the device address of a token packet.
func (p *Packet) Address() uint8 {
	if len(p.Data) < 3 {
		return 0
	}
	return p.Data[2] & 0x7F
}

// Endpoint returns the endpoint number of a token packet.
func (p *Packet) Endpoint() uint8 {
	return uint8(p.lastWord()>>7) & 0x0F
}

// FrameNumber returns the frame number of a SOF packet.
func (p *Packet) FrameNumber() uint16 {
	return p.lastWord() & 0x07FF
}

// HasCRC reports whether the packet carries a CRC field. Handshakes and
// PRE do not.
func (p *Packet) HasCRC() bool {
	return len(p.Data) >= 4
}

// CRC returns the received CRC: five bits for tokens, sixteen for data.
// It is zero for packets without a CRC field.
func (p *Packet) CRC() uint16 {
	if !p.HasCRC() {
		return 0
	}
	w := p.lastWord()
	if len(p.Data) == 4 && !p.PID().IsData() {
		return w >> tokenBits
	}
	return w
}

// ComputedCRC returns the CRC calculated over the received payload.
func (p *Packet) ComputedCRC() uint16 {
	switch {
	case !p.HasCRC():
		return 0
	case p.PID().IsData():
		return CRC16(p.Payload())
	}
	return uint16(CRC5(p.lastWord() & 0x07FF))
}

// CRCValid reports whether the received and computed CRCs agree.
func (p *Packet) CRCValid() bool {
	return p.CRC() == p.ComputedCRC()
}

// Payload returns the data bytes between the PID and CRC16 of a data
// packet.
func (p *Packet) Payload() []byte {
	if !p.PID().IsData() || len(p.Data) < 4 {
		return nil
	}
	return p.Data[2 : len(p.Data)-2]
}

// PayloadLen returns the number of payload bytes.
func (p *Packet) PayloadLen() int {
	return len(p.Payload())
}

// Field decodes width little-endian payload bytes starting at offset.
// It reports false if the field extends past the payload.
func (p *Packet) Field(offset, width int) (uint32, bool) {
	pl := p.Payload()
	if offset < 0 || width < 1 || width > 4 || offset+width > len(pl) {
		return 0, false
	}
	var v uint32
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint32(pl[offset+i])
	}
	return v, true
}

// BitStart returns the sample at which bit i begins, clamped to the end
// of the packet.
func (p *Packet) BitStart(i int) uint64 {
	if len(p.BitStarts) == 0 {
		return p.Start
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.BitStarts) {
		i = len(p.BitStarts) - 1
	}
	return p.BitStarts[i]
}

// PayloadSpan returns the samples covering width payload bytes starting at
// offset.
func (p *Packet) PayloadSpan(offset, width int) (start, end uint64) {
	return p.BitStart(payloadBit + offset*8), p.BitStart(payloadBit + (offset+width)*8)
}

// String returns a compact representation of the packet.
func (p *Packet) String() string {
	pid := p.PID()
	switch {
	case pid.IsToken():
		return fmt.Sprintf("%s addr=%d ep=%d", pid, p.Address(), p.Endpoint())
	case pid == PIDSOF:
		return fmt.Sprintf("%s frame=%d", pid, p.FrameNumber())
	case pid.IsData():
		return fmt.Sprintf("%s [% X]", pid, p.Payload())
	}
	return pid.String()
}
