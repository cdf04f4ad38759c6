package control

import (
	"fmt"

	"github.com/ardnew/usbdecode/descriptor"
	"github.com/ardnew/usbdecode/event"
	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/usb"
)

// Handler tracks the control transfers of one pipe.
type Handler struct {
	address      uint8
	stage        Stage
	deviceToHost bool
	noData       bool
	parser       *descriptor.Parser
	err          error
}

// NewHandler returns a handler for the default pipe of the device at
// address. Completed string descriptors are recorded in strings.
func NewHandler(address uint8, strings *descriptor.StringTable) *Handler {
	return &Handler{
		address: address,
		stage:   StatusEnd,
		parser:  descriptor.New(address, strings),
	}
}

// Address returns the device address of the pipe.
func (h *Handler) Address() uint8 {
	return h.address
}

// Stage returns the last stage seen.
func (h *Handler) Stage() Stage {
	return h.stage
}

// Err returns the most recent protocol violation seen on the pipe, or nil.
// The error wraps [pkg.ErrProtocol] and [pkg.ErrUnexpectedPacket].
func (h *Handler) Err() error {
	return h.err
}

// Parser returns the data stage parser of the pipe.
func (h *Handler) Parser() *descriptor.Parser {
	return h.parser
}

// Reset returns the pipe to StatusEnd and discards partial data.
func (h *Handler) Reset() {
	h.setStage(StatusEnd)
	h.parser.Reset()
}

func (h *Handler) setStage(s Stage) {
	if h.stage != s {
		pkg.LogDebug(pkg.ComponentControl, "stage changed",
			"address", h.address,
			"from", h.stage.String(),
			"to", s.String())
	}
	h.stage = s
}

// reset abandons the current transfer and emits p with flag.
func (h *Handler) reset(p *packet.Packet, s event.Sink, flag event.Flag) uint64 {
	if flag == event.FlagUnexpectedPacket {
		h.violation(p, nil)
	}
	h.Reset()
	return event.EmitPacket(s, p, flag)
}

// violation records p as illegal in the current stage.
func (h *Handler) violation(p *packet.Packet, cause error) {
	err := fmt.Errorf("%w: %w: %s in stage %s",
		pkg.ErrProtocol, pkg.ErrUnexpectedPacket, p.PID(), h.stage)
	if cause != nil {
		err = fmt.Errorf("%w: %w", err, cause)
	}
	h.err = err
	pkg.LogDebug(pkg.ComponentControl, "unexpected packet",
		"address", h.address, "error", err)
}

// advance moves to stage next and emits p with flag.
func (h *Handler) advance(next Stage, p *packet.Packet, s event.Sink, flag event.Flag) uint64 {
	h.setStage(next)
	return event.EmitPacket(s, p, flag)
}

// Handle applies packet p to the pipe, emits its events into s and commits.
// It returns the last sample of the packet.
func (h *Handler) Handle(p *packet.Packet, s event.Sink) uint64 {
	pid := p.PID()

	if pid == packet.PIDSetup {
		flag := event.FlagNone
		if h.stage != StatusEnd {
			flag = event.FlagUnexpectedPacket
			h.violation(p, nil)
		}
		return h.advance(SetupToken, p, s, flag)
	}

	switch h.stage {
	case SetupToken:
		if pid != packet.PIDData0 {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		var req usb.SetupPacket
		if err := usb.ParseSetupPacket(p.Payload(), &req); err != nil {
			h.violation(p, err)
			h.Reset()
			return event.EmitPacket(s, p, event.FlagUnexpectedPacket)
		}
		h.deviceToHost = req.IsDeviceToHost()
		h.noData = req.Length == 0
		h.parser.Reset()
		h.parser.SetRequest(req)
		h.setStage(SetupData)
		pkg.LogDebug(pkg.ComponentControl, "setup", "address", h.address, "request", req.String())
		return emitSetup(s, p, &req, h.parser)

	case SetupData:
		if pid != packet.PIDAck {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		return h.advance(SetupAck, p, s, event.FlagNone)

	case SetupAck, DataEnd:
		if pid != packet.PIDIn && pid != packet.PIDOut {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		flag := event.FlagNone
		if h.stage == SetupAck {
			flag = event.FlagDataBegin
		}
		var next Stage
		switch {
		case h.noData && pid == packet.PIDIn:
			next = StatusInToken
		case h.noData:
			next = StatusOutToken
		case h.deviceToHost && pid == packet.PIDIn:
			next = DataInToken
		case h.deviceToHost:
			next = StatusOutToken
		case pid == packet.PIDOut:
			next = DataOutToken
		default:
			next = StatusInToken
		}
		if next == StatusOutToken || next == StatusInToken {
			flag = event.FlagStatusBegin
		}
		return h.advance(next, p, s, flag)

	case DataInToken:
		switch {
		case pid == packet.PIDNak:
			return h.advance(DataEnd, p, s, event.FlagDataInNAKed)
		case pid == packet.PIDStall:
			return h.reset(p, s, event.FlagStatusEnd)
		case pid.IsData():
			h.setStage(DataInData)
			return h.emitDataStage(p, s)
		}
		return h.reset(p, s, event.FlagUnexpectedPacket)

	case DataOutToken:
		if !pid.IsData() {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		h.setStage(DataOutData)
		return h.emitDataStage(p, s)

	case DataInData:
		if pid != packet.PIDAck {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		return h.advance(DataEnd, p, s, event.FlagNone)

	case DataOutData:
		switch pid {
		case packet.PIDStall:
			return h.reset(p, s, event.FlagStatusEnd)
		case packet.PIDNak:
			return h.advance(DataEnd, p, s, event.FlagDataOutNAKed)
		case packet.PIDAck:
			return h.advance(DataEnd, p, s, event.FlagNone)
		}
		return h.reset(p, s, event.FlagUnexpectedPacket)

	case StatusInToken:
		switch {
		case pid == packet.PIDStall:
			return h.advance(StatusEnd, p, s, event.FlagStatusEnd)
		case pid == packet.PIDNak:
			return h.advance(StatusInNAKed, p, s, event.FlagStatusInNAKed)
		case pid.IsData():
			return h.advance(StatusInDataEmpty, p, s, event.FlagNone)
		}
		return h.reset(p, s, event.FlagUnexpectedPacket)

	case StatusOutToken:
		if !pid.IsData() {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		return h.advance(StatusOutDataEmpty, p, s, event.FlagNone)

	case StatusInDataEmpty:
		if pid != packet.PIDAck {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		return h.advance(StatusEnd, p, s, event.FlagStatusEnd)

	case StatusOutDataEmpty:
		switch pid {
		case packet.PIDAck, packet.PIDStall:
			return h.advance(StatusEnd, p, s, event.FlagStatusEnd)
		case packet.PIDNak:
			return h.advance(StatusOutDataNAKed, p, s, event.FlagStatusOutNAKed)
		}
		return h.reset(p, s, event.FlagUnexpectedPacket)

	case StatusOutDataNAKed:
		if pid != packet.PIDOut {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		return h.advance(StatusOutToken, p, s, event.FlagNone)

	case StatusInNAKed:
		if pid != packet.PIDIn {
			return h.reset(p, s, event.FlagUnexpectedPacket)
		}
		return h.advance(StatusInToken, p, s, event.FlagNone)
	}

	// Idle: anything but SETUP is emitted as is.
	return h.reset(p, s, event.FlagNone)
}

// emitDataStage emits a data stage packet with its payload decoded by the
// pipe's parser.
func (h *Handler) emitDataStage(p *packet.Packet, s event.Sink) uint64 {
	event.EmitHeader(s, p, event.FlagNone)
	h.parser.Parse(p, s)
	event.EmitTrailer(s, p)
	s.Commit()
	return p.End
}
