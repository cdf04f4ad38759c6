package event

import (
	"errors"

	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/signal"
)

// Bit offsets of the token fields from the start of SYNC.
const (
	pidBit     = 8
	tokenBit   = 16
	tokenCRCAt = 27
)

// EmitSignal emits and commits a bus state.
func EmitSignal(s Sink, st signal.BusState) {
	s.Emit(Signal{Span: Span{st.Start, st.End}, State: st.State})
	s.Commit()
}

// EmitHeader emits the SYNC and PID fields of p.
func EmitHeader(s Sink, p *packet.Packet, flag Flag) {
	s.Emit(Sync{Span: Span{p.BitStart(0), p.BitStart(pidBit)}})
	s.Emit(PID{
		Span: Span{p.BitStart(pidBit), p.BitStart(tokenBit)},
		PID:  p.PID(),
		Flag: flag,
	})
}

// EmitTrailer emits the CRC16 and EOP of a data packet.
func EmitTrailer(s Sink, p *packet.Packet) {
	last := len(p.BitStarts) - 1
	s.Emit(CRC16{
		Span:     Span{p.BitStart(last - 16), p.BitStart(last)},
		Received: p.CRC(),
		Computed: p.ComputedCRC(),
	})
	emitEOP(s, p)
}

func emitEOP(s Sink, p *packet.Packet) {
	s.Emit(EOP{Span: Span{p.BitStart(len(p.BitStarts) - 1), p.End}})
}

// EmitPacket emits the framing of p and commits. PRE packets have no EOP.
// It returns the last sample of the packet.
func EmitPacket(s Sink, p *packet.Packet, flag Flag) uint64 {
	EmitHeader(s, p, flag)

	pid := p.PID()
	last := len(p.BitStarts) - 1
	switch {
	case pid.IsToken(), pid == packet.PIDSOF:
		span := Span{p.BitStart(tokenBit), p.BitStart(tokenCRCAt)}
		if pid == packet.PIDSOF {
			s.Emit(FrameNum{Span: span, Frame: p.FrameNumber()})
		} else {
			s.Emit(AddrEndp{Span: span, Address: p.Address(), Endpoint: p.Endpoint()})
		}
		s.Emit(CRC5{
			Span:     Span{p.BitStart(tokenCRCAt), p.BitStart(last)},
			Received: uint8(p.CRC()),
			Computed: uint8(p.ComputedCRC()),
		})
	case pid.IsData():
		for i, b := range p.Payload() {
			start, end := p.PayloadSpan(i, 1)
			s.Emit(Byte{Span: Span{start, end}, Value: b})
		}
		s.Emit(CRC16{
			Span:     Span{p.BitStart(last - 16), p.BitStart(last)},
			Received: p.CRC(),
			Computed: p.ComputedCRC(),
		})
	}

	if pid != packet.PIDPre {
		emitEOP(s, p)
	}
	s.Commit()
	return p.End
}

// EmitBytes emits every byte of p from SYNC through CRC, then the EOP, and
// commits. It returns the last sample of the packet.
func EmitBytes(s Sink, p *packet.Packet) uint64 {
	for i, b := range p.Data {
		s.Emit(Byte{Span: Span{p.BitStart(i * 8), p.BitStart((i + 1) * 8)}, Value: b})
	}
	emitEOP(s, p)
	s.Commit()
	return p.End
}

// EmitError emits and commits an error spanning the region err describes.
// It returns the last sample of that region.
func EmitError(s Sink, err error, start, end uint64) uint64 {
	var me *packet.MalformedError
	if errors.As(err, &me) {
		start, end = me.Start, me.End
	}
	s.Emit(Error{Span: Span{start, end}, Err: err})
	s.Commit()
	return end
}

// EmitMarker emits and commits a bus level event, Reset or KeepAlive,
// spanning [start, end].
func EmitMarker(s Sink, k Kind, start, end uint64) {
	switch k {
	case KindReset:
		s.Emit(Reset{Span: Span{start, end}})
	case KindKeepAlive:
		s.Emit(KeepAlive{Span: Span{start, end}})
	default:
		return
	}
	s.Commit()
}
