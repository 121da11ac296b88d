package alu

// Add adds r and the carry to l.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add(l, r uint8, carry bool) Result {
	c := b2u(carry)
	sum := uint16(l) + uint16(r) + c
	half := uint16(l&0xF) + uint16(r&0xF) + c
	return pack(sum&0xFF, sum&0xFF == 0, false, half > 0xF, sum > 0xFF)
}

// Sub subtracts r and the borrow from l.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub(l, r uint8, borrow bool) Result {
	b := int(b2u(borrow))
	diff := int(l) - int(r) - b
	half := int(l&0xF) - int(r&0xF) - b
	v := uint16(uint8(diff))
	return pack(v, v == 0, true, half < 0, diff < 0)
}

// Inc increments v. The carry flag is not affected, and is passed
// through from carry.
func Inc(v uint8, carry bool) Result {
	r := v + 1
	return pack(uint16(r), r == 0, false, v&0xF == 0xF, carry)
}

// Dec decrements v. The carry flag is not affected, and is passed
// through from carry.
func Dec(v uint8, carry bool) Result {
	r := v - 1
	return pack(uint16(r), r == 0, true, v&0xF == 0, carry)
}

// Add16 adds two 16-bit values as two chained 8-bit additions, the way
// the hardware computes SP+e8. The flags are those of the low byte
// addition, with Z and N always reset.
func Add16(l, r uint16) Result {
	low := Add(uint8(l), uint8(r), false)
	high := Add(uint8(l>>8), uint8(r>>8), low.Carry())
	return pack(uint16(high.Byte())<<8|uint16(low.Byte()), false, false, low.HalfCarry(), low.Carry())
}

// Add16HL adds two 16-bit values as two chained 8-bit additions, the
// way the hardware computes ADD HL, rr. The half-carry and carry flags
// are those of the high byte addition (carry from bit 11 and bit 15),
// N is reset, and Z is not produced: callers keep the previous Z.
func Add16HL(l, r uint16) Result {
	low := Add(uint8(l), uint8(r), false)
	high := Add(uint8(l>>8), uint8(r>>8), low.Carry())
	return pack(uint16(high.Byte())<<8|uint16(low.Byte()), false, false, high.HalfCarry(), high.Carry())
}

// AddSigned adds the signed 8-bit offset e to v.
//
//	ADD SP, e8
//	LD HL, SP+e8
func AddSigned(v uint16, e uint8) Result {
	return Add16(v, uint16(int16(int8(e))))
}

// BCDAdjust corrects v after an addition or subtraction of two binary
// coded decimal values, given the flags that operation produced.
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the upper digit was corrected.
func BCDAdjust(v uint8, n, h, c bool) Result {
	var correction uint8
	carry := false
	if h || (!n && v&0xF > 0x9) {
		correction |= 0x06
	}
	if c || (!n && v > 0x99) {
		correction |= 0x60
		carry = true
	}
	if n {
		v -= correction
	} else {
		v += correction
	}
	return pack(uint16(v), v == 0, n, false, carry)
}
