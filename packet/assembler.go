package packet

import (
	"bytes"

	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/signal"
	"github.com/ardnew/usbdecode/usb"
)

// nrzi maps a run of n equal line states to its data bits: the transition
// that starts the run is a 0 and each following bit time is a 1.
var nrzi = [...]byte{0, 1, 1, 1, 1, 1, 1}

// stuffRun is the run length after which the next transition is a stuff
// bit.
const stuffRun = 7

// preamble is SYNC followed by the PRE PID as it appears on the bus.
var preamble = []byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 1, 1, 0, 0}

// Assembler builds packets from the data states of a filter.
type Assembler struct {
	filter         *signal.Filter
	expectLowSpeed bool
}

// NewAssembler creates an assembler reading from f.
func NewAssembler(f *signal.Filter) *Assembler {
	return &Assembler{filter: f}
}

// ExpectLowSpeed reports whether a PRE token switched the assembler to low
// speed for the next packet.
func (a *Assembler) ExpectLowSpeed() bool {
	return a.expectLowSpeed
}

// IsDataSignal reports whether s can begin a packet: a single bit time at
// the current speed, or at either speed after a PRE token.
func (a *Assembler) IsDataSignal(s signal.BusState) bool {
	if a.expectLowSpeed {
		return (s.IsData(usb.SpeedFull) && s.NumBits(usb.SpeedFull) == 1) ||
			(s.IsData(usb.SpeedLow) && s.NumBits(usb.SpeedLow) == 1)
	}
	speed := a.filter.Speed()
	return s.IsData(speed) && s.NumBits(speed) == 1
}

// Assemble reads one packet beginning with state s. It returns the packet
// and the first state following it, normally the SE0 of the EOP. On
// failure the error is a *MalformedError spanning the consumed states.
func (a *Assembler) Assemble(s signal.BusState) (*Packet, signal.BusState, error) {
	f := a.filter

	if a.expectLowSpeed {
		if s.IsData(usb.SpeedFull) && s.NumBits(usb.SpeedFull) == 1 {
			f.SetSpeed(usb.SpeedFull)
			a.expectLowSpeed = false
		} else {
			f.SetSpeed(usb.SpeedLow)
		}
	}

	speed := f.Speed()
	bitSamples := speed.BitTime() / f.SampleDuration()
	start := s.Start

	p := &Packet{Speed: speed}
	bits := make([]byte, 0, 64)
	stuffed := false
	pre := false

	for s.IsData(f.Speed()) && !pre {
		n := s.NumBits(f.Speed())

		first := 0
		if stuffed {
			first = 1
		}
		if n > first {
			bits = append(bits, nrzi[first:n]...)
		}

		for bc := 0; bc < n; bc++ {
			at := s.Start + uint64(bitSamples*float64(bc)+0.5)
			if stuffed && bc == 0 {
				p.StuffBits = append(p.StuffBits, at)
				continue
			}
			p.BitStarts = append(p.BitStarts, at)
		}

		if f.Speed() == usb.SpeedFull && bytes.Equal(bits, preamble) {
			f.SetSpeed(usb.SpeedLow)
			a.expectLowSpeed = true
			pre = true
		}

		stuffed = n == stuffRun
		s = f.Next()
	}

	p.BitStarts = append(p.BitStarts, s.Start)

	// Only an SE0 may end a packet. A J or K that outlasts a data state
	// holds more ones than stuffing allows.
	if !pre && (s.State == signal.J || s.State == signal.K) {
		return nil, s, a.malformed(start, s.Start, len(bits), pkg.ErrBitStuff)
	}

	if len(bits) == 0 || len(bits)%8 != 0 || len(p.BitStarts)%8 != 1 {
		return nil, s, a.malformed(start, s.End, len(bits), nil)
	}

	p.Data = make([]byte, len(bits)/8)
	for i, b := range bits {
		p.Data[i/8] |= b << (i % 8)
	}
	if !p.PID().ValidLength(len(p.Data)) {
		return nil, s, a.malformed(start, s.End, len(bits), nil)
	}

	p.Start = p.BitStarts[0]
	p.End = s.End + uint64(bitSamples+0.5)

	if err := p.CheckCRC(); err != nil {
		pkg.LogDebug(pkg.ComponentPacket, "CRC mismatch",
			"start", p.Start, "error", err)
	}
	return p, s, nil
}

func (a *Assembler) malformed(start, end uint64, bits int, cause error) error {
	pkg.LogDebug(pkg.ComponentPacket, "malformed packet",
		"start", start, "end", end, "bits", bits, "cause", cause)
	return &MalformedError{Start: start, End: end, Bits: bits, Cause: cause}
}
