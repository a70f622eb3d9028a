package cpu

import (
	"encoding/binary"
)

// PutWord stores a 16-bit value little-endian, the 6502 byte order.
func PutWord(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

// Word reads a little-endian 16-bit value.
func Word(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// PutValue stores the low width bytes of v little-endian into b.
// Widths of 1 and 2 are supported; anything else is ignored.
func PutValue(b []byte, v int, width int) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		PutWord(b, uint16(v))
	}
}

// Fits reports whether v can be stored in width bytes, either unsigned or
// as a negative two's complement value.
func Fits(v int, width int) bool {
	switch width {
	case 1:
		return v >= -128 && v <= 0xFF
	case 2:
		return v >= -32768 && v <= 0xFFFF
	}
	return false
}
