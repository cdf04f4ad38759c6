package event

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/signal"
	"github.com/ardnew/usbdecode/usb"
)

// errorComparer compares errors by identity so cmp can diff Error events.
var errorComparer = cmp.Comparer(func(a, b error) bool { return errors.Is(a, b) })

func TestEmitPacketToken(t *testing.T) {
	var r Recorder
	p := packet.New(packet.Token(packet.PIDSetup, 0, 0), 100, 4, usb.SpeedFull)
	end := EmitPacket(&r, p, FlagUnexpectedPacket)

	want := []Event{
		Sync{Span: Span{100, 132}},
		PID{Span: Span{132, 164}, PID: packet.PIDSetup, Flag: FlagUnexpectedPacket},
		AddrEndp{Span: Span{164, 208}, Address: 0, Endpoint: 0},
		CRC5{Span: Span{208, 228}, Received: 2, Computed: 2},
		EOP{Span: Span{228, 240}},
	}
	if diff := cmp.Diff(want, r.Events()); diff != "" {
		t.Errorf("EmitPacket() mismatch (-want +got):\n%s", diff)
	}
	if end != 240 {
		t.Errorf("EmitPacket() = %d, want 240", end)
	}
	if r.Commits() != 1 || r.Pending() != 0 {
		t.Errorf("Commits() = %d, Pending() = %d, want 1, 0", r.Commits(), r.Pending())
	}
}

func TestEmitPacketSOF(t *testing.T) {
	var r Recorder
	EmitPacket(&r, packet.New(packet.SOF(0x123), 0, 4, usb.SpeedFull), FlagNone)
	got := r.Filter(KindFrameNum)
	if len(got) != 1 || got[0].(FrameNum).Frame != 0x123 {
		t.Errorf("FrameNum events = %v, want frame 0x123", got)
	}
}

func TestEmitPacketData(t *testing.T) {
	var r Recorder
	p := packet.New(packet.Data(packet.PIDData1, []byte{0xAB}), 0, 4, usb.SpeedFull)
	EmitPacket(&r, p, FlagNone)

	crc := packet.CRC16([]byte{0xAB})
	want := []Event{
		Sync{Span: Span{0, 32}},
		PID{Span: Span{32, 64}, PID: packet.PIDData1},
		Byte{Span: Span{64, 96}, Value: 0xAB},
		CRC16{Span: Span{96, 160}, Received: crc, Computed: crc},
		EOP{Span: Span{160, 172}},
	}
	if diff := cmp.Diff(want, r.Events()); diff != "" {
		t.Errorf("EmitPacket() mismatch (-want +got):\n%s", diff)
	}
	if !r.Events()[3].(CRC16).Valid() {
		t.Error("CRC16.Valid() = false")
	}
}

func TestEmitPacketPreHasNoEOP(t *testing.T) {
	var r Recorder
	EmitPacket(&r, packet.New(packet.Handshake(packet.PIDPre), 0, 4, usb.SpeedFull), FlagNone)
	if n := len(r.Filter(KindEOP)); n != 0 {
		t.Errorf("EOP events = %d, want 0", n)
	}
	if n := len(r.Events()); n != 2 {
		t.Errorf("events = %d, want SYNC and PID", n)
	}
}

func TestEmitBytes(t *testing.T) {
	var r Recorder
	wire := packet.Handshake(packet.PIDAck)
	end := EmitBytes(&r, packet.New(wire, 0, 4, usb.SpeedFull))
	want := []Event{
		Byte{Span: Span{0, 32}, Value: packet.Sync},
		Byte{Span: Span{32, 64}, Value: byte(packet.PIDAck)},
		EOP{Span: Span{64, 76}},
	}
	if diff := cmp.Diff(want, r.Events()); diff != "" {
		t.Errorf("EmitBytes() mismatch (-want +got):\n%s", diff)
	}
	if end != 76 {
		t.Errorf("EmitBytes() = %d, want 76", end)
	}
}

func TestEmitError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		start, end uint64
		want       Span
	}{
		{
			name:  "malformed region",
			err:   &packet.MalformedError{Start: 10, End: 50, Bits: 3},
			start: 0, end: 0,
			want: Span{10, 50},
		},
		{
			name:  "explicit region",
			err:   pkg.ErrProtocol,
			start: 5, end: 9,
			want: Span{5, 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recorder
			end := EmitError(&r, tt.err, tt.start, tt.end)
			want := []Event{Error{Span: tt.want, Err: tt.err}}
			if diff := cmp.Diff(want, r.Events(), errorComparer); diff != "" {
				t.Errorf("EmitError() mismatch (-want +got):\n%s", diff)
			}
			if end != tt.want.End {
				t.Errorf("EmitError() = %d, want %d", end, tt.want.End)
			}
		})
	}
}

func TestEmitSignalAndMarkers(t *testing.T) {
	var r Recorder
	EmitSignal(&r, signal.BusState{State: signal.SE0, Start: 1, End: 2})
	EmitMarker(&r, KindReset, 3, 4)
	EmitMarker(&r, KindKeepAlive, 5, 6)
	EmitMarker(&r, KindByte, 7, 8)

	want := []Event{
		Signal{Span: Span{1, 2}, State: signal.SE0},
		Reset{Span: Span{3, 4}},
		KeepAlive{Span: Span{5, 6}},
	}
	if diff := cmp.Diff(want, r.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if r.Commits() != 3 {
		t.Errorf("Commits() = %d, want 3", r.Commits())
	}
}

func TestRecorderPending(t *testing.T) {
	var r Recorder
	r.Emit(Sync{})
	if len(r.Events()) != 0 || r.Pending() != 1 {
		t.Errorf("before Commit: Events() = %d, Pending() = %d, want 0, 1", len(r.Events()), r.Pending())
	}
	r.Commit()
	if len(r.Events()) != 1 || r.Pending() != 0 {
		t.Errorf("after Commit: Events() = %d, Pending() = %d, want 1, 0", len(r.Events()), r.Pending())
	}
	r.Reset()
	if len(r.Events()) != 0 || r.Commits() != 0 {
		t.Error("Reset() left events behind")
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{KindHIDItem.String(), "hiditem"},
		{FlagStatusEnd.String(), "status-end"},
		{FlagNone.String(), ""},
		{FormatVendorID.String(), "wVendorId"},
		{FormatCDCValueATMVCFeatureSelector.String(), "CDC_wValue_ATMVCFeatureSelector"},
		{Format(200).String(), "Format(200)"},
		{Field{Name: "idVendor", Width: 2, Value: 0x1234, Flag: FlagFieldIncomplete}.String(), "idVendor=0x1234 [incomplete]"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
