// Package interrupts provides the interrupt controller of the Game Boy,
// which is logically part of the CPU. It holds the interrupt enable
// (types.IE) and interrupt flag (types.IF) registers, together with
// the interrupt master enable flag (IME).
package interrupts

import (
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/internal/types/registers"
)

// Line is one of the five interrupt lines, identified by its bit
// index in the IE and IF registers. A lower index is a higher
// priority.
type Line uint8

const (
	// VBlank is requested every time the PPU enters VBlank mode.
	VBlank Line = iota
	// LCD is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCD
	// Timer is requested when the timer overflows
	// (types.TIMA > 0xFF).
	Timer
	// Serial is requested when a serial transfer is completed.
	Serial
	// Joypad is requested when any of types.P1 bits 0-3 go from
	// high to low.
	Joypad

	lineCount
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1).
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4).
	JoypadFlag = types.Bit4
)

// Vector returns the address of the service routine of the line.
func (l Line) Vector() uint16 {
	return 0x0040 + uint16(l)*8
}

// Flag returns the bit of the line in the IE and IF registers.
func (l Line) Flag() uint8 {
	return 1 << l
}

func (l Line) String() string {
	switch l {
	case VBlank:
		return "VBlank"
	case LCD:
		return "LCD"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	}
	return "Unknown"
}

type register uint8

const (
	regFlag register = iota
	regEnable
	regCount
)

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
//
// The IME is set by the EI and RETI instructions, and reset
// by the DI instruction and when an interrupt is serviced.
type Service struct {
	IME bool

	regs *registers.File[register]
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{
		regs: registers.NewFile[register](int(regCount)).WithMask(regFlag, 0x1F),
	}
}

// Flag returns the interrupt flag register (types.IF), without the
// unused upper bits.
func (s *Service) Flag() uint8 {
	return s.regs.Get(regFlag)
}

// Enable returns the interrupt enable register (types.IE).
func (s *Service) Enable() uint8 {
	return s.regs.Get(regEnable)
}

// SetFlag sets the interrupt flag register.
func (s *Service) SetFlag(v uint8) {
	s.regs.Set(regFlag, v)
}

// SetEnable sets the interrupt enable register.
func (s *Service) SetEnable(v uint8) {
	s.regs.Set(regEnable, v)
}

// Request requests the interrupt on line, regardless of
// IME and the Enable register.
func (s *Service) Request(line Line) {
	s.regs.SetBit(regFlag, uint(line), true)
}

// Pending returns the interrupts that are both requested
// and enabled.
func (s *Service) Pending() uint8 {
	return s.regs.Get(regEnable) & s.regs.Get(regFlag) & 0x1F
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Pending() != 0
}

// Next returns the highest priority line that is requested
// and enabled, without acknowledging it.
func (s *Service) Next() (Line, bool) {
	pending := s.Pending()
	for l := VBlank; l < lineCount; l++ {
		if pending&l.Flag() != 0 {
			return l, true
		}
	}
	return 0, false
}

// Vector returns the vector of the highest priority pending
// interrupt, and clears its bit in the Flag register. It
// returns false if no interrupt is pending.
func (s *Service) Vector() (uint16, bool) {
	l, ok := s.Next()
	if !ok {
		return 0, false
	}
	s.regs.SetBit(regFlag, uint(l), false)
	return l.Vector(), true
}

// Read implements types.Component for types.IF and types.IE.
func (s *Service) Read(address uint16) (uint8, bool) {
	switch address {
	case types.IF:
		return s.Flag() | 0xE0, true // the upper 3 bits are always set
	case types.IE:
		return s.Enable(), true
	}
	return 0, false
}

// Write implements types.Component for types.IF and types.IE.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		s.SetFlag(value)
	case types.IE:
		s.SetEnable(value)
	}
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
func (s *Service) Load(st *types.State) {
	s.SetFlag(st.Read8())
	s.SetEnable(st.Read8())
	s.IME = st.ReadBool()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag())
	st.Write8(s.Enable())
	st.WriteBool(s.IME)
}
