package binary

// Big-endian field decoding used by ID3v2 and FLAC headers.
//
// All functions are pure and never index past the span they are given: a span
// of the wrong width decodes to 0, false.

// Uint16BE decodes a 2-byte big-endian integer.
func Uint16BE(b []byte) (uint16, bool) {
	if len(b) != 2 {
		return 0, false
	}
	return uint16(b[0])<<8 | uint16(b[1]), true
}

// Uint24BE decodes a 3-byte big-endian integer (ID3v2.2 frame sizes).
func Uint24BE(b []byte) (uint32, bool) {
	if len(b) != 3 {
		return 0, false
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), true
}

// Uint32BE decodes a 4-byte big-endian integer.
func Uint32BE(b []byte) (uint32, bool) {
	if len(b) != 4 {
		return 0, false
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), true
}

// UintBE decodes a big-endian integer of 1 to 8 bytes.
func UintBE(b []byte) (uint64, bool) {
	if len(b) == 0 || len(b) > 8 {
		return 0, false
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, true
}

// Synchsafe decodes a 4-byte synchsafe integer (7 bits per byte, bit 7 ignored).
// ID3v2 uses it for the tag size and, from v2.4, for frame sizes.
func Synchsafe(b []byte) (uint32, bool) {
	if len(b) != 4 {
		return 0, false
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F), true
}

// Bits extracts n bits from v starting at bit offset shift (counted from the
// least significant bit).
//
//	Bits(0b1011_0000, 4, 4) == 0b1011
func Bits(v uint64, shift, n uint) uint64 {
	if n == 0 {
		return 0
	}
	if n >= 64 {
		return v >> shift
	}
	return (v >> shift) & (1<<n - 1)
}
