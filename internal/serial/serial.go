// Package serial provides the serial port of the Game Boy, used to
// exchange data with another Game Boy over a link cable, and by test
// ROMs to report their results.
package serial

import (
	"io"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/scheduler"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/internal/types/registers"
)

const (
	// ticksPerBit is the number of T-cycles per bit with the internal
	// clock (8192 Hz), a bit is shifted on the falling edge of bit 8 of
	// the internal divider.
	ticksPerBit = 512
	// CyclesPerBit is ticksPerBit in machine cycles.
	CyclesPerBit = ticksPerBit / 4
)

type register uint8

const (
	regSB register = iota
	regSC
	regCount
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each bit, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Bit 1  : data = o6 o5 o4 o3 o2 o1 o0 i0
//	Bit 2  : data = o5 o4 o3 o2 o1 o0 i0 i1
//	...
//	Bit 8  : data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	regs  *registers.File[register]
	count uint8 // the number of bits that have been transferred.

	device Device // the device that is attached to this controller.
	output io.Writer
	err    error

	irq   *interrupts.Service
	s     *scheduler.Scheduler
	clock func() uint16 // the internal divider
}

// NewController creates a new Controller. clock returns the internal
// divider of the timer, which the internal serial clock is derived from.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. This is the same as if the device is not
// plugged in. If you want to attach a device, use the Controller.Attach method.
func NewController(irq *interrupts.Service, s *scheduler.Scheduler, clock func() uint16) *Controller {
	c := &Controller{
		regs:   registers.NewFile[register](int(regCount)).WithMask(regSC, types.Bit7|types.Bit0),
		device: nullDevice{},
		irq:    irq,
		s:      s,
		clock:  clock,
	}
	s.RegisterEvent(scheduler.SerialBitTransfer, c.transferBit)
	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	if d == nil {
		d = nullDevice{}
	}
	c.device = d
}

// SetOutput copies every byte sent with the internal clock to w.
func (c *Controller) SetOutput(w io.Writer) {
	c.output = w
}

// Err returns the first error returned by the output writer.
func (c *Controller) Err() error {
	return c.err
}

func (c *Controller) internalClock() bool {
	return c.regs.TestBit(regSC, 0)
}

func (c *Controller) transferring() bool {
	return c.regs.TestBit(regSC, 7)
}

// Read implements types.Component for types.SB and types.SC.
func (c *Controller) Read(address uint16) (uint8, bool) {
	switch address {
	case types.SB:
		return c.regs.Get(regSB), true
	case types.SC:
		return c.regs.Get(regSC) | 0x7E, true // bits 1-6 are always set
	}
	return 0, false
}

// Write implements types.Component for types.SB and types.SC.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.regs.Set(regSB, value)
	case types.SC:
		c.regs.Set(regSC, value)
		c.s.DescheduleEvent(scheduler.SerialBitTransfer)
		c.count = 0
		if c.transferring() && c.internalClock() {
			if c.output != nil && c.err == nil {
				_, c.err = c.output.Write([]byte{c.regs.Get(regSB)})
			}
			c.scheduleBit()
		}
	}
}

// scheduleBit schedules the next bit on the next falling edge of bit 8
// of the internal divider.
func (c *Controller) scheduleBit() {
	ticksToGo := ticksPerBit - c.clock()&(ticksPerBit-1)
	c.s.ScheduleEvent(scheduler.SerialBitTransfer, uint64(ticksToGo+3)/4)
}

// transferBit shifts a single bit out to the device, and a bit in from
// it. After 8 bits, the serial interrupt is requested.
func (c *Controller) transferBit() {
	if !c.transferring() || !c.internalClock() {
		return
	}
	sb := c.regs.Get(regSB)
	bit := c.device.Send()
	c.device.Receive(sb&types.Bit7 == types.Bit7)

	sb <<= 1
	if bit {
		sb |= 1
	}
	c.regs.Set(regSB, sb)

	if c.count++; c.count == 8 {
		c.complete()
		return
	}
	c.scheduleBit()
}

// complete ends a transfer, and requests the serial interrupt.
func (c *Controller) complete() {
	c.count = 0
	c.regs.SetBit(regSC, 7, false)
	c.irq.Request(interrupts.Serial)
}

// Send returns the leftmost bit of the data register, unless
// the caller is the master, in which case it always returns true.
// This is because the master is driving the clock, and thus should
// not be trying to read from its own data register.
func (c *Controller) Send() bool {
	if c.internalClock() {
		return true
	}
	return c.regs.Get(regSB)&types.Bit7 == types.Bit7
}

// Receive receives a bit from the master, and shifts it into the data
// register. If the caller is the master, it does nothing.
func (c *Controller) Receive(bit bool) {
	if c.internalClock() || !c.transferring() {
		return
	}
	sb := c.regs.Get(regSB) << 1
	if bit {
		sb |= 1
	}
	c.regs.Set(regSB, sb)
	if c.count++; c.count == 8 {
		c.complete()
	}
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - data (uint8)
//   - control (uint8)
//   - count (uint8)
func (c *Controller) Load(s *types.State) {
	c.regs.Set(regSB, s.Read8())
	c.regs.Set(regSC, s.Read8())
	c.count = s.Read8()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - data (uint8)
//   - control (uint8)
//   - count (uint8)
func (c *Controller) Save(s *types.State) {
	s.Write8(c.regs.Get(regSB))
	s.Write8(c.regs.Get(regSC))
	s.Write8(c.count)
}
