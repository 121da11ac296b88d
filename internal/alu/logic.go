package alu

import "fmt"

// And performs a bitwise AND.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func And(l, r uint8) Result {
	v := l & r
	return pack(uint16(v), v == 0, false, true, false)
}

// Or performs a bitwise OR.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Or(l, r uint8) Result {
	v := l | r
	return pack(uint16(v), v == 0, false, false, false)
}

// Xor performs a bitwise XOR.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Xor(l, r uint8) Result {
	v := l ^ r
	return pack(uint16(v), v == 0, false, false, false)
}

// SwapNibbles swaps the upper and lower nibbles of v.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func SwapNibbles(v uint8) Result {
	r := v<<4 | v>>4
	return pack(uint16(r), r == 0, false, false, false)
}

// TestBit tests bit index of v. Only the flags of the result are
// meaningful; the carry flag is passed through from carry.
//
//	Z - Set if bit index of v is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
//
// index is the 3-bit field of the BIT opcode; only its low 3 bits are
// used. TestBitChecked rejects larger indexes instead.
func TestBit(v uint8, index uint, carry bool) Result {
	return pack(0, v&(1<<(index&7)) == 0, false, true, carry)
}

// TestBitChecked is TestBit, failing with ErrInvalidOperand if index is
// not a bit of an 8-bit value.
func TestBitChecked(v uint8, index int, carry bool) (Result, error) {
	if index < 0 || index > 7 {
		return 0, fmt.Errorf("%w: bit %d of an 8-bit value", ErrInvalidOperand, index)
	}
	return TestBit(v, uint(index), carry), nil
}
