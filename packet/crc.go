package packet

// Generator polynomials, bit-reversed for LSB-first shifting.
const (
	crc5Poly  = 0x14
	crc16Poly = 0xA001
)

// CRC5 returns the token CRC over the 11-bit address/endpoint or frame
// number field.
func CRC5(data uint16) uint8 {
	reg := uint8(0x1F)
	for i := 0; i < 11; i++ {
		bit := uint8(data>>i)&1 ^ reg&1
		reg >>= 1
		if bit != 0 {
			reg ^= crc5Poly
		}
	}
	return ^reg & 0x1F
}

// CRC16 returns the data packet CRC over payload.
func CRC16(payload []byte) uint16 {
	reg := uint16(0xFFFF)
	for _, b := range payload {
		for i := 0; i < 8; i++ {
			bit := uint16(b>>i)&1 ^ reg&1
			reg >>= 1
			if bit != 0 {
				reg ^= crc16Poly
			}
		}
	}
	return ^reg
}
