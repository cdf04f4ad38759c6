// Package packet assembles USB low-speed and full-speed packets from
// filtered bus states.
//
// An [Assembler] consumes consecutive data states from a [signal.Filter],
// undoes NRZI line coding and bit stuffing, and records the sample at which
// every retained bit begins so later stages can attribute any byte or field
// to an exact region of the capture. CRC5 and CRC16 trailers are kept
// alongside the values computed over the payload; a mismatch is reported,
// never fatal.
//
// A full-speed PRE token switches the assembler to low speed for the
// following packet. If that packet still resolves at full speed, the
// assembler reverts, which models hubs repeating host low-speed traffic.
//
// The encoders [Token], [SOF], [Data] and [Handshake] build wire bytes,
// SYNC included, for the inverse direction.
package packet
