package cpu

import "fmt"

// jumpRelative adds the signed immediate to PC.
func (c *CPU) jumpRelative() {
	c.PC = uint16(int32(c.PC) + int32(int8(c.n8())))
}

func defineJumps() {
	DefineInstruction(0x18, "JR e8", 2, 3, (*CPU).jumpRelative)
	DefineInstruction(0xC3, "JP a16", 3, 4, func(c *CPU) {
		c.PC = c.n16()
	})
	DefineInstruction(0xE9, "JP HL", 1, 1, func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0xCD, "CALL a16", 3, 6, func(c *CPU) {
		c.push(c.PC)
		c.PC = c.n16()
	})
	DefineInstruction(0xC9, "RET", 1, 4, func(c *CPU) {
		c.PC = c.pop()
	})

	// RETI enables IME immediately, unlike EI
	DefineInstruction(0xD9, "RETI", 1, 4, func(c *CPU) {
		c.PC = c.pop()
		c.irq.IME = true
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		DefineBranch(0x20|cc<<3, "JR "+conditionNames[cc]+", e8", 2, 2, 1, func(c *CPU) {
			if c.condition(cc) {
				c.jumpRelative()
				c.branched = true
			}
		})
		DefineBranch(0xC2|cc<<3, "JP "+conditionNames[cc]+", a16", 3, 3, 1, func(c *CPU) {
			if c.condition(cc) {
				c.PC = c.n16()
				c.branched = true
			}
		})
		DefineBranch(0xC4|cc<<3, "CALL "+conditionNames[cc]+", a16", 3, 3, 3, func(c *CPU) {
			if c.condition(cc) {
				c.push(c.PC)
				c.PC = c.n16()
				c.branched = true
			}
		})
		DefineBranch(0xC0|cc<<3, "RET "+conditionNames[cc], 1, 2, 3, func(c *CPU) {
			if c.condition(cc) {
				c.PC = c.pop()
				c.branched = true
			}
		})
	}

	// restarts
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), 1, 4, func(c *CPU) {
			c.push(c.PC)
			c.PC = vector
		})
	}
}
