// Package ram provides a basic RAM implementation, mapped to a fixed
// window of the address space, with an optional mirror.
package ram

import "github.com/thelolagemann/gomeboy-core/internal/types"

// RAM represents a block of RAM mapped at [start, start+len(data)).
//
// A mirror window maps a second range of addresses onto the same
// data, starting at its first byte, such as the echo of work RAM at
// 0xE000 - 0xFDFF.
type RAM struct {
	data       []byte
	start, end uint16

	mirrored               bool
	mirrorStart, mirrorEnd uint16
}

// NewRAM returns a new RAM of size bytes, mapped at start.
func NewRAM(start uint16, size int) *RAM {
	return &RAM{
		data:  make([]byte, size),
		start: start,
		end:   start + uint16(size-1),
	}
}

// WithMirror maps [start, end] onto the RAM.
func (r *RAM) WithMirror(start, end uint16) *RAM {
	r.mirrored = true
	r.mirrorStart, r.mirrorEnd = start, end
	return r
}

// offset returns the offset in data of address, and false if the
// address is not mapped.
func (r *RAM) offset(address uint16) (int, bool) {
	if types.InRange(address, r.start, r.end) {
		return int(address - r.start), true
	}
	if r.mirrored && types.InRange(address, r.mirrorStart, r.mirrorEnd) {
		return int(address-r.mirrorStart) % len(r.data), true
	}
	return 0, false
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) (uint8, bool) {
	if i, ok := r.offset(address); ok {
		return r.data[i], true
	}
	return 0, false
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) {
	if i, ok := r.offset(address); ok {
		r.data[i] = value
	}
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

var _ types.Stater = (*RAM)(nil)

// Load loads the contents of the RAM.
func (r *RAM) Load(s *types.State) {
	s.ReadData(r.data)
}

// Save saves the contents of the RAM.
func (r *RAM) Save(s *types.State) {
	s.WriteData(r.data)
}

// Fixed is a read-only window that always reads back the same value,
// such as the unusable area between OAM and the I/O registers.
type Fixed struct {
	start, end uint16
	value      uint8
}

// NewFixed returns a window mapped at [start, end] reading value.
func NewFixed(start, end uint16, value uint8) Fixed {
	return Fixed{start: start, end: end, value: value}
}

// Read returns the fixed value for every address in the window.
func (f Fixed) Read(address uint16) (uint8, bool) {
	if types.InRange(address, f.start, f.end) {
		return f.value, true
	}
	return 0, false
}

// Write is ignored.
func (f Fixed) Write(uint16, uint8) {}
