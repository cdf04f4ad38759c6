package packet

// Sync is the SYNC byte as received LSB first.
const Sync = 0x80

// Token returns the wire bytes of an IN, OUT or SETUP token.
func Token(pid PID, address, endpoint uint8) []byte {
	field := uint16(address&0x7F) | uint16(endpoint&0x0F)<<7
	return tokenBytes(pid, field)
}

// SOF returns the wire bytes of a start-of-frame packet.
func SOF(frame uint16) []byte {
	return tokenBytes(PIDSOF, frame&0x07FF)
}

func tokenBytes(pid PID, field uint16) []byte {
	w := field | uint16(CRC5(field))<<tokenBits
	return []byte{Sync, byte(pid), byte(w), byte(w >> 8)}
}

// Data returns the wire bytes of a DATA0 or DATA1 packet carrying payload.
func Data(pid PID, payload []byte) []byte {
	crc := CRC16(payload)
	b := make([]byte, 0, len(payload)+4)
	b = append(b, Sync, byte(pid))
	b = append(b, payload...)
	return append(b, byte(crc), byte(crc>>8))
}

// Handshake returns the wire bytes of an ACK, NAK, STALL or PRE packet.
func Handshake(pid PID) []byte {
	return []byte{Sync, byte(pid)}
}
