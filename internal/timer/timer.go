// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/internal/types/registers"
)

// TicksPerCycle is the number of oscillator ticks (T-cycles) in a
// machine cycle. The internal divider counts T-cycles.
const TicksPerCycle = 4

type register uint8

const (
	regTIMA register = iota
	regTMA
	regTAC
	regCount
)

// bits maps the clock select field of TAC to the bit of the internal
// divider whose falling edge increments TIMA.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// TIMA is incremented on every falling edge of the selected
// divider bit ANDed with the enable bit of TAC. As the edge is
// detected on the combined signal, writing DIV or TAC may itself
// produce a falling edge and increment TIMA.
type Controller struct {
	div  uint16 // internal divider, DIV is the upper 8 bits
	regs *registers.File[register]

	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		regs: registers.NewFile[register](int(regCount)).WithMask(regTAC, 0x07),
		irq:  irq,
	}
}

// armed returns the signal fed to the falling edge detector for the
// given divider and TAC values.
func armed(div uint16, tac uint8) bool {
	return tac&types.Bit2 != 0 && div&bits[tac&0b11] != 0
}

// Cycle advances the timer by one machine cycle.
func (c *Controller) Cycle(uint64) error {
	tac := c.regs.Get(regTAC)
	before := armed(c.div, tac)
	c.div += TicksPerCycle
	if before && !armed(c.div, tac) {
		c.increment()
	}
	return nil
}

// increment increments TIMA, reloading it from TMA and requesting
// the timer interrupt when it overflows.
func (c *Controller) increment() {
	tima := c.regs.Get(regTIMA) + 1
	if tima == 0 {
		tima = c.regs.Get(regTMA)
		c.irq.Request(interrupts.Timer)
	}
	c.regs.Set(regTIMA, tima)
}

// ResetDivider resets the internal divider, as done by a write to
// types.DIV or by the STOP instruction.
func (c *Controller) ResetDivider() {
	before := armed(c.div, c.regs.Get(regTAC))
	c.div = 0
	if before {
		c.increment()
	}
}

// SysClock returns the internal divider.
func (c *Controller) SysClock() uint16 {
	return c.div
}

// SetSysClock sets the internal divider without edge detection, used
// to set up the state left behind by the boot ROM.
func (c *Controller) SetSysClock(div uint16) {
	c.div = div
}

// Read implements types.Component for the timer registers.
func (c *Controller) Read(address uint16) (uint8, bool) {
	switch address {
	case types.DIV:
		return uint8(c.div >> 8), true
	case types.TIMA:
		return c.regs.Get(regTIMA), true
	case types.TMA:
		return c.regs.Get(regTMA), true
	case types.TAC:
		return c.regs.Get(regTAC) | 0xF8, true // the upper 5 bits are always set
	}
	return 0, false
}

// Write implements types.Component for the timer registers.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		c.ResetDivider()
	case types.TIMA:
		c.regs.Set(regTIMA, value)
	case types.TMA:
		c.regs.Set(regTMA, value)
	case types.TAC:
		before := armed(c.div, c.regs.Get(regTAC))
		c.regs.Set(regTAC, value)
		if before && !armed(c.div, c.regs.Get(regTAC)) {
			c.increment()
		}
	}
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.regs.Set(regTIMA, s.Read8())
	c.regs.Set(regTMA, s.Read8())
	c.regs.Set(regTAC, s.Read8())
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.Write8(c.regs.Get(regTIMA))
	s.Write8(c.regs.Get(regTMA))
	s.Write8(c.regs.Get(regTAC))
}
