// Package io provides the memory bus of the Game Boy. The bus knows
// nothing about the components attached to it; it only arbitrates the
// 16-bit address space between them.
package io

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// OpenBus is the value read from an address that no attached
// component answers.
const OpenBus uint8 = 0xFF

var (
	// ErrNullComponent is returned when attaching a nil component.
	ErrNullComponent = errors.New("bus: nil component")
	// ErrInvalidAddress is returned when an address does not fit in 16 bits.
	ErrInvalidAddress = errors.New("bus: invalid address")
	// ErrInvalidValue is returned when a value does not fit in 8 bits.
	ErrInvalidValue = errors.New("bus: invalid value")
)

// Bus is an ordered collection of components. The order in which
// components are attached is their priority: a read is answered by
// the first component that answers it, and a write is broadcast to
// every component.
//
// The bus does not own its components, and is not safe for concurrent
// use.
type Bus struct {
	components []types.Component
}

// NewBus returns a bus with the given components attached in order.
func NewBus(components ...types.Component) (*Bus, error) {
	b := &Bus{}
	for _, c := range components {
		if err := b.Attach(c); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Attach appends c to the bus, with a lower priority than every
// component already attached.
func (b *Bus) Attach(c types.Component) error {
	if c == nil {
		return ErrNullComponent
	}
	b.components = append(b.components, c)
	return nil
}

// Components returns the attached components in priority order.
func (b *Bus) Components() []types.Component {
	return append([]types.Component(nil), b.components...)
}

// Read returns the value at address, as answered by the first
// attached component. If no component answers, OpenBus is returned.
func (b *Bus) Read(address uint16) uint8 {
	for _, c := range b.components {
		if v, ok := c.Read(address); ok {
			return v
		}
	}
	return OpenBus
}

// Write broadcasts value to every attached component.
func (b *Bus) Write(address uint16, value uint8) {
	for _, c := range b.components {
		c.Write(address, value)
	}
}

// Peek is Read for an address that has not been range checked.
func (b *Bus) Peek(address int) (uint8, error) {
	if address < 0 || address > 0xFFFF {
		return 0, fmt.Errorf("%w: 0x%X", ErrInvalidAddress, address)
	}
	return b.Read(uint16(address)), nil
}

// Poke is Write for an address and value that have not been range
// checked.
func (b *Bus) Poke(address, value int) error {
	if address < 0 || address > 0xFFFF {
		return fmt.Errorf("%w: 0x%X", ErrInvalidAddress, address)
	}
	if value < 0 || value > 0xFF {
		return fmt.Errorf("%w: 0x%X", ErrInvalidValue, value)
	}
	b.Write(uint16(address), uint8(value))
	return nil
}
