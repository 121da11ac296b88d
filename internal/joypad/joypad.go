// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

var buttonNames = [...]string{"A", "B", "Select", "Start", "Right", "Left", "Up", "Down"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "Unknown"
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
//
// The joypad interrupt is requested when any of bits 0-3 go from
// high to low, which happens when a button on a selected line is
// pressed, or when a line with a pressed button is selected.
type State struct {
	// pressed holds a 1 for every pressed button, the lower 4 bits
	// are the action buttons, the upper 4 bits the directions.
	pressed uint8
	// selected holds bits 4 and 5 of types.P1.
	selected uint8

	irq *interrupts.Service
}

// New returns a new joypad state, with no buttons pressed and
// no lines selected.
func New(irq *interrupts.Service) *State {
	return &State{
		selected: types.Bit4 | types.Bit5,
		irq:      irq,
	}
}

// lines returns bits 0-3 of types.P1 (0=Pressed).
func (s *State) lines() uint8 {
	var d uint8
	if !bits.Test(s.selected, 4) {
		d |= s.pressed >> 4
	}
	if !bits.Test(s.selected, 5) {
		d |= s.pressed & 0xF
	}
	return ^d & 0xF
}

// update requests the joypad interrupt if any line went low.
func (s *State) update(before uint8) {
	if before&^s.lines() != 0 {
		s.irq.Request(interrupts.Joypad)
	}
}

// Press presses a button.
func (s *State) Press(button Button) {
	before := s.lines()
	s.pressed = bits.Set(s.pressed, uint(button))
	s.update(before)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.pressed = bits.Reset(s.pressed, uint(button))
}

// Pressed returns true if the button is held down.
func (s *State) Pressed(button Button) bool {
	return bits.Test(s.pressed, uint(button))
}

// Read implements types.Component for types.P1.
func (s *State) Read(address uint16) (uint8, bool) {
	if address != types.P1 {
		return 0, false
	}
	return 0xC0 | s.selected | s.lines(), true
}

// Write implements types.Component for types.P1. Only the select
// bits are writable.
func (s *State) Write(address uint16, value uint8) {
	if address != types.P1 {
		return
	}
	before := s.lines()
	s.selected = value & (types.Bit4 | types.Bit5)
	s.update(before)
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.pressed = st.Read8()
	s.selected = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.pressed)
	st.Write8(s.selected)
}
