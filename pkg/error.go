package pkg

import "errors"

// Bus decoding errors.
var (
	// ErrMalformedPacket indicates a bit sequence that does not form a
	// whole number of bytes.
	ErrMalformedPacket = errors.New("malformed packet")

	// ErrCRC indicates a received CRC that does not match the computed one.
	ErrCRC = errors.New("CRC mismatch")

	// ErrBitStuff indicates a run of more than six equal bits.
	ErrBitStuff = errors.New("bit stuffing error")

	// ErrProtocol indicates a packet sequence that violates the control
	// transfer protocol.
	ErrProtocol = errors.New("protocol error")

	// ErrUnexpectedPacket indicates a packet whose PID is not valid in the
	// current control transfer stage.
	ErrUnexpectedPacket = errors.New("unexpected packet")

	// ErrCancelled indicates decoding was stopped by the caller.
	ErrCancelled = errors.New("decode cancelled")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidCapture indicates a capture whose channel data is unusable.
	ErrInvalidCapture = errors.New("invalid capture")

	// ErrChannelNotFound indicates a channel name or index absent from a capture.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrSetupPacketTooShort indicates the setup packet data is too short.
	ErrSetupPacketTooShort = errors.New("setup packet too short")

	// ErrDescriptorTooShort indicates the descriptor data is too short.
	ErrDescriptorTooShort = errors.New("descriptor too short")
)
