// Package registers provides a register file, a fixed set of named
// 8-bit registers. The same register file is used for the CPU's
// registers and for the control registers of the peripherals.
package registers

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

var (
	// ErrInvalidValue is returned when storing a value that does not
	// fit in 8 bits.
	ErrInvalidValue = errors.New("registers: invalid value")
	// ErrUnknownRegister is returned when addressing a register that
	// is not part of the file.
	ErrUnknownRegister = errors.New("registers: unknown register")
)

// File is a register file keyed by R, a closed enumeration of the
// registers it holds (0 .. count-1). Every register may carry a write
// mask; bits outside of the mask always read back as 0.
//
// File is not safe for concurrent use.
type File[R ~uint8] struct {
	values []uint8
	masks  []uint8
}

// NewFile returns a register file with count registers, all zero and
// fully writable.
func NewFile[R ~uint8](count int) *File[R] {
	f := &File[R]{
		values: make([]uint8, count),
		masks:  make([]uint8, count),
	}
	for i := range f.masks {
		f.masks[i] = 0xFF
	}
	return f
}

// WithMask restricts the writable bits of r to mask.
func (f *File[R]) WithMask(r R, mask uint8) *File[R] {
	f.masks[r] = mask
	f.values[r] &= mask
	return f
}

// Len returns the number of registers in the file.
func (f *File[R]) Len() int {
	return len(f.values)
}

// Get returns the value of r.
func (f *File[R]) Get(r R) uint8 {
	return f.values[r]
}

// Set sets r to value, applying the register's mask.
func (f *File[R]) Set(r R, value uint8) {
	f.values[r] = value & f.masks[r]
}

// Store is Set for values that have not been range checked, such as
// those coming from a debugger or a test harness.
func (f *File[R]) Store(r R, value int) error {
	if int(r) >= len(f.values) {
		return fmt.Errorf("%w: %d", ErrUnknownRegister, r)
	}
	if value < 0 || value > 0xFF {
		return fmt.Errorf("%w: %d", ErrInvalidValue, value)
	}
	f.Set(r, uint8(value))
	return nil
}

// TestBit returns true if bit index of r is set. The caller guarantees
// index < 8, see TestBitChecked.
func (f *File[R]) TestBit(r R, index uint) bool {
	return bits.Test(f.values[r], index)
}

// SetBit sets or resets bit index of r. The caller guarantees
// index < 8, see SetBitChecked.
func (f *File[R]) SetBit(r R, index uint, value bool) {
	f.Set(r, bits.SetTo(f.values[r], index, value))
}

// TestBitChecked is TestBit, failing with bits.ErrOutOfRange if index
// is not a bit of the register.
func (f *File[R]) TestBitChecked(r R, index uint) (bool, error) {
	return bits.TestChecked(f.values[r], index)
}

// SetBitChecked is SetBit, failing with bits.ErrOutOfRange if index
// is not a bit of the register.
func (f *File[R]) SetBitChecked(r R, index uint, value bool) error {
	v, err := bits.SetChecked(f.values[r], index, value)
	if err != nil {
		return err
	}
	f.Set(r, v)
	return nil
}

// Pair composes two registers of the file into a 16-bit register.
type Pair[R ~uint8] struct {
	file      *File[R]
	high, low R
}

// Pair returns the 16-bit register made up of high and low.
func (f *File[R]) Pair(high, low R) Pair[R] {
	return Pair[R]{file: f, high: high, low: low}
}

// Uint16 returns the value of the pair.
func (p Pair[R]) Uint16() uint16 {
	return bits.Make16(p.file.Get(p.high), p.file.Get(p.low))
}

// SetUint16 sets the value of the pair.
func (p Pair[R]) SetUint16(value uint16) {
	p.file.Set(p.high, bits.High(value))
	p.file.Set(p.low, bits.Low(value))
}
