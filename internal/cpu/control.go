package cpu

import "github.com/thelolagemann/gomeboy-core/internal/alu"

// flag masks of the F register
const (
	flagZ uint8 = 1 << alu.FlagZero
	flagN uint8 = 1 << alu.FlagSubtract
	flagH uint8 = 1 << alu.FlagHalfCarry
	flagC uint8 = 1 << alu.FlagCarry
)

func defineControl() {
	DefineInstruction(0x00, "NOP", 1, 1, func(c *CPU) {})

	// STOP is followed by a padding byte, which is skipped
	DefineInstruction(0x10, "STOP", 2, 1, func(c *CPU) {
		c.mode = ModeStop
		if c.onStop != nil {
			c.onStop()
		}
	})

	// HALT with IME reset and an interrupt already pending does not
	// halt, and the next opcode fetch fails to increment PC
	DefineInstruction(0x76, "HALT", 1, 1, func(c *CPU) {
		if !c.irq.IME && c.irq.HasInterrupts() {
			c.haltBug = true
			return
		}
		c.mode = ModeHalt
	})

	DefineInstruction(0xF3, "DI", 1, 1, func(c *CPU) {
		c.irq.IME = false
		c.enableIME = false
	})
	DefineInstruction(0xFB, "EI", 1, 1, func(c *CPU) {
		c.enableIME = true
	})

	// decimal adjust
	//
	//	DAA
	//
	// Flags affected:
	//
	//	Z - Set if result is zero.
	//	N - Not affected.
	//	H - Reset.
	//	C - Set or reset according to operation.
	DefineInstruction(0x27, "DAA", 1, 1, func(c *CPU) {
		r := alu.BCDAdjust(c.Get(A), c.flag(alu.FlagSubtract), c.flag(alu.FlagHalfCarry), c.flag(alu.FlagCarry))
		c.Set(A, r.Byte())
		c.setFlags(r.Flags())
	})

	// complement A
	//
	//	CPL
	//
	// Flags affected:
	//
	//	N - Set.
	//	H - Set.
	DefineInstruction(0x2F, "CPL", 1, 1, func(c *CPU) {
		c.Set(A, ^c.Get(A))
		c.setFlags(c.Get(F)&(flagZ|flagC) | flagN | flagH)
	})

	// set carry flag
	//
	//	SCF
	DefineInstruction(0x37, "SCF", 1, 1, func(c *CPU) {
		c.setFlags(c.Get(F)&flagZ | flagC)
	})

	// complement carry flag
	//
	//	CCF
	DefineInstruction(0x3F, "CCF", 1, 1, func(c *CPU) {
		c.setFlags(c.Get(F)&flagZ | (c.Get(F)^flagC)&flagC)
	})
}
