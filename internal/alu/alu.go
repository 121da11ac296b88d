// Package alu implements the arithmetic logic unit of the Game Boy CPU.
//
// Every operation is a pure function of its operands, and returns a
// Result which packs the computed value together with the four flags
// (Zero, Subtract, Half-carry, Carry) the operation produced. The flags
// are laid out at the same bit positions as in the F register, so that
// Result.Flags may be written to F directly.
package alu

import (
	"errors"
	"fmt"
)

// ErrInvalidOperand is returned when an operand does not fit the width
// of the operation.
var ErrInvalidOperand = errors.New("alu: invalid operand")

// Flag bit positions, shared with the F register.
const (
	FlagZero      = 7
	FlagSubtract  = 6
	FlagHalfCarry = 5
	FlagCarry     = 4
)

// Result is the packed result of an operation: bits 23-8 hold the
// value (zero-extended for 8-bit operations), bits 7-4 hold the Z, N,
// H and C flags, and bits 3-0 are always 0.
type Result uint32

func pack(value uint16, z, n, h, c bool) Result {
	r := Result(value) << 8
	if z {
		r |= 1 << FlagZero
	}
	if n {
		r |= 1 << FlagSubtract
	}
	if h {
		r |= 1 << FlagHalfCarry
	}
	if c {
		r |= 1 << FlagCarry
	}
	return r
}

// Value returns the computed value.
func (r Result) Value() uint16 { return uint16(r >> 8) }

// Byte returns the computed value of an 8-bit operation.
func (r Result) Byte() uint8 { return uint8(r >> 8) }

// Flags returns the flags, laid out as in the F register.
func (r Result) Flags() uint8 { return uint8(r) & 0xF0 }

func (r Result) Zero() bool      { return r&(1<<FlagZero) != 0 }
func (r Result) Subtract() bool  { return r&(1<<FlagSubtract) != 0 }
func (r Result) HalfCarry() bool { return r&(1<<FlagHalfCarry) != 0 }
func (r Result) Carry() bool     { return r&(1<<FlagCarry) != 0 }

func (r Result) String() string {
	flags := []byte("----")
	for i, f := range []struct {
		set bool
		c   byte
	}{{r.Zero(), 'Z'}, {r.Subtract(), 'N'}, {r.HalfCarry(), 'H'}, {r.Carry(), 'C'}} {
		if f.set {
			flags[i] = f.c
		}
	}
	return fmt.Sprintf("%04X %s", r.Value(), flags)
}

// Operand8 checks that v fits an 8-bit operand.
func Operand8(v int) (uint8, error) {
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("%w: %d is not an 8-bit value", ErrInvalidOperand, v)
	}
	return uint8(v), nil
}

// Operand16 checks that v fits a 16-bit operand.
func Operand16(v int) (uint16, error) {
	if v < 0 || v > 0xFFFF {
		return 0, fmt.Errorf("%w: %d is not a 16-bit value", ErrInvalidOperand, v)
	}
	return uint16(v), nil
}

func b2u(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
