package packet

import (
	"errors"
	"testing"

	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/usb"
)

func TestPacketToken(t *testing.T) {
	p := New(Token(PIDIn, 21, 3), 100, 4, usb.SpeedFull)
	if p.PID() != PIDIn {
		t.Errorf("PID() = %v, want IN", p.PID())
	}
	if p.Address() != 21 || p.Endpoint() != 3 {
		t.Errorf("Address(), Endpoint() = %d, %d, want 21, 3", p.Address(), p.Endpoint())
	}
	if p.Payload() != nil {
		t.Errorf("Payload() = % X, want nil", p.Payload())
	}
	if got, want := p.String(), "IN addr=21 ep=3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPacketSOF(t *testing.T) {
	p := New(SOF(1234), 0, 4, usb.SpeedFull)
	if p.FrameNumber() != 1234 {
		t.Errorf("FrameNumber() = %d, want 1234", p.FrameNumber())
	}
	if !p.CRCValid() {
		t.Error("CRCValid() = false")
	}
}

func TestPacketHandshakeCRC(t *testing.T) {
	for _, pid := range []PID{PIDAck, PIDNak, PIDStall, PIDPre} {
		t.Run(pid.String(), func(t *testing.T) {
			p := New(Handshake(pid), 0, 4, usb.SpeedFull)
			if p.HasCRC() {
				t.Error("HasCRC() = true, want false")
			}
			if p.CRC() != 0 || p.ComputedCRC() != 0 {
				t.Errorf("CRC(), ComputedCRC() = %#x, %#x, want 0, 0", p.CRC(), p.ComputedCRC())
			}
			if !p.CRCValid() {
				t.Error("CRCValid() = false, want true")
			}
			if err := p.CheckCRC(); err != nil {
				t.Errorf("CheckCRC() = %v, want nil", err)
			}
		})
	}
}

func TestPacketField(t *testing.T) {
	p := New(Data(PIDData0, []byte{0x12, 0x01, 0x10, 0x01, 0xEF, 0xBE, 0xAD, 0xDE}), 0, 4, usb.SpeedFull)
	tests := []struct {
		offset, width int
		want          uint32
		ok            bool
	}{
		{0, 1, 0x12, true},
		{2, 2, 0x0110, true},
		{4, 4, 0xDEADBEEF, true},
		{7, 1, 0xDE, true},
		{7, 2, 0, false},
		{8, 1, 0, false},
		{-1, 1, 0, false},
	}
	for _, tt := range tests {
		got, ok := p.Field(tt.offset, tt.width)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Field(%d, %d) = 0x%X, %v, want 0x%X, %v", tt.offset, tt.width, got, ok, tt.want, tt.ok)
		}
	}
	if p.PayloadLen() != 8 {
		t.Errorf("PayloadLen() = %d, want 8", p.PayloadLen())
	}
}

func TestPacketSpans(t *testing.T) {
	p := New(Data(PIDData1, []byte{1, 2}), 10, 4, usb.SpeedFull)
	if got := len(p.BitStarts); got != 6*8+1 {
		t.Fatalf("len(BitStarts) = %d, want 49", got)
	}
	start, end := p.PayloadSpan(1, 1)
	if start != 10+24*4 || end != 10+32*4 {
		t.Errorf("PayloadSpan(1, 1) = [%d, %d], want [106, 138]", start, end)
	}
	if got := p.BitStart(1000); got != 10+48*4 {
		t.Errorf("BitStart(1000) = %d, want clamp to %d", got, 10+48*4)
	}
	if p.End != 10+48*4+12 {
		t.Errorf("End = %d, want %d", p.End, 10+48*4+12)
	}
}

func TestPIDValidLength(t *testing.T) {
	tests := []struct {
		pid  PID
		n    int
		want bool
	}{
		{PIDSetup, 4, true},
		{PIDSetup, 5, false},
		{PIDSOF, 4, true},
		{PIDData0, 4, true},
		{PIDData1, 13, true},
		{PIDData1, 3, false},
		{PIDAck, 2, true},
		{PIDAck, 4, false},
		{PIDPre, 2, true},
		{PID(0x00), 2, false},
	}
	for _, tt := range tests {
		if got := tt.pid.ValidLength(tt.n); got != tt.want {
			t.Errorf("%v.ValidLength(%d) = %v, want %v", tt.pid, tt.n, got, tt.want)
		}
	}
}

func TestMalformedError(t *testing.T) {
	var err error = &MalformedError{Start: 1, End: 9, Bits: 3}
	if !errors.Is(err, pkg.ErrMalformedPacket) {
		t.Error("errors.Is(MalformedError, ErrMalformedPacket) = false")
	}
	var me *MalformedError
	if !errors.As(err, &me) || me.Bits != 3 {
		t.Errorf("errors.As() = %v, want Bits 3", me)
	}
	if errors.Is(err, pkg.ErrBitStuff) {
		t.Error("errors.Is(MalformedError, ErrBitStuff) = true without a cause")
	}

	err = &MalformedError{Start: 1, End: 9, Bits: 3, Cause: pkg.ErrBitStuff}
	if !errors.Is(err, pkg.ErrBitStuff) || !errors.Is(err, pkg.ErrMalformedPacket) {
		t.Errorf("errors.Is(%v) misses ErrBitStuff or ErrMalformedPacket", err)
	}
}
