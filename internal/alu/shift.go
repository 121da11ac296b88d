package alu

// Direction is the direction of a rotation.
type Direction uint8

const (
	Left Direction = iota
	Right
)

// ShiftLeft shifts v left by one bit.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func ShiftLeft(v uint8) Result {
	r := v << 1
	return pack(uint16(r), r == 0, false, false, v&0x80 != 0)
}

// ShiftRightArithmetic shifts v right by one bit. Bit 7 keeps its
// original value.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func ShiftRightArithmetic(v uint8) Result {
	r := v>>1 | v&0x80
	return pack(uint16(r), r == 0, false, false, v&0x01 != 0)
}

// ShiftRightLogical shifts v right by one bit. Bit 7 is reset.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func ShiftRightLogical(v uint8) Result {
	r := v >> 1
	return pack(uint16(r), r == 0, false, false, v&0x01 != 0)
}

// Rotate rotates v by one bit in the given direction. The bit that
// wraps around is copied to the carry flag.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit that wrapped around.
func Rotate(dir Direction, v uint8) Result {
	var r uint8
	var carry bool
	if dir == Left {
		r = v<<1 | v>>7
		carry = v&0x80 != 0
	} else {
		r = v>>1 | v<<7
		carry = v&0x01 != 0
	}
	return pack(uint16(r), r == 0, false, false, carry)
}

// RotateThroughCarry rotates the 9-bit value formed by carry and v by
// one bit in the given direction. Bit 8 of the rotated value becomes
// the new carry.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains bit 8 of the rotated value.
func RotateThroughCarry(dir Direction, v uint8, carry bool) Result {
	wide := b2u(carry)<<8 | uint16(v)
	if dir == Left {
		wide = (wide<<1 | wide>>8) & 0x1FF
	} else {
		wide = (wide>>1 | wide<<8) & 0x1FF
	}
	r := uint8(wide)
	return pack(uint16(r), r == 0, false, false, wide&0x100 != 0)
}
