// Package bits provides small, pure helpers for testing, setting and
// extracting bits of unsigned integers. The unchecked helpers (Val, Test,
// Set, Reset) are used on the hot path of the emulator and expect a valid
// index. The checked helpers return ErrOutOfRange for indexes and widths
// that do not fit the word.
package bits

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// ErrOutOfRange is returned when a bit index or width does not fit the
// word it is applied to.
var ErrOutOfRange = errors.New("bits: out of range")

// Width returns the width of T in bits.
func Width[T constraints.Unsigned]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}

// Val returns the value of the bit at the given index.
func Val[T constraints.Unsigned](b T, i uint) T {
	return (b >> i) & 1
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](b T, i uint) bool {
	return (b>>i)&1 != 0
}

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](b T, i uint) T {
	return b | (1 << i)
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](b T, i uint) T {
	return b &^ (1 << i)
}

// SetTo sets or resets the bit at the given index depending on v.
func SetTo[T constraints.Unsigned](b T, i uint, v bool) T {
	if v {
		return Set(b, i)
	}
	return Reset(b, i)
}

// Mask returns a mask with only the bit at index set.
func Mask(index uint) (uint64, error) {
	if index >= 64 {
		return 0, fmt.Errorf("%w: bit %d of 64", ErrOutOfRange, index)
	}
	return 1 << index, nil
}

// TestChecked is Test, failing with ErrOutOfRange if i is not a bit of T.
func TestChecked[T constraints.Unsigned](b T, i uint) (bool, error) {
	if i >= Width[T]() {
		return false, fmt.Errorf("%w: bit %d of %d", ErrOutOfRange, i, Width[T]())
	}
	return Test(b, i), nil
}

// SetChecked is SetTo, failing with ErrOutOfRange if i is not a bit of T.
func SetChecked[T constraints.Unsigned](b T, i uint, v bool) (T, error) {
	if i >= Width[T]() {
		return b, fmt.Errorf("%w: bit %d of %d", ErrOutOfRange, i, Width[T]())
	}
	return SetTo(b, i, v), nil
}

// Extract returns length bits of b starting at bit start, shifted down
// to bit 0.
func Extract[T constraints.Unsigned](b T, start, length uint) (T, error) {
	w := Width[T]()
	if length == 0 || start >= w || start+length > w {
		return 0, fmt.Errorf("%w: extract %d bits at %d of %d", ErrOutOfRange, length, start, w)
	}
	v := b >> start
	if length == w {
		return v, nil
	}
	return v & (T(1)<<length - 1), nil
}

// Clip truncates value to the lowest width bits.
func Clip(width uint, value uint64) (uint64, error) {
	if width == 0 || width > 64 {
		return 0, fmt.Errorf("%w: width %d", ErrOutOfRange, width)
	}
	if width == 64 {
		return value, nil
	}
	return value & (1<<width - 1), nil
}

// Rotate rotates value left by distance within a word of the given width.
// A negative distance rotates right. Bits above width are discarded before
// rotating.
func Rotate(width uint, value uint64, distance int) (uint64, error) {
	v, err := Clip(width, value)
	if err != nil {
		return 0, err
	}
	d := distance % int(width)
	if d < 0 {
		d += int(width)
	}
	if d == 0 {
		return v, nil
	}
	r := v<<uint(d) | v>>(width-uint(d))
	return Clip(width, r)
}

// Make16 joins a high and low byte into a 16-bit word.
func Make16(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// High returns the upper byte of a 16-bit word.
func High(v uint16) uint8 {
	return uint8(v >> 8)
}

// Low returns the lower byte of a 16-bit word.
func Low(v uint16) uint8 {
	return uint8(v)
}

// Complement8 returns the one's complement of v.
func Complement8(v uint8) uint8 {
	return ^v
}
