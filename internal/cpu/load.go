package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/alu"
)

func defineLoads() {
	// LD r, r'
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue // HALT
			}
			dst, src := dst, src
			cycles := uint8(1)
			if dst == 6 || src == 6 {
				cycles = 2
			}
			DefineInstruction(0x40|dst<<3|src, fmt.Sprintf("LD %s, %s", operandNames[dst], operandNames[src]), 1, cycles, func(c *CPU) {
				c.writeOperand(dst, c.readOperand(src))
			})
		}

		// LD r, d8
		dst := dst
		DefineInstruction(0x06|dst<<3, fmt.Sprintf("LD %s, d8", operandNames[dst]), 2, cycles8(dst, 2, 3), func(c *CPU) {
			c.writeOperand(dst, c.n8())
		})
	}

	// LD rr, d16
	for i := uint8(0); i < 4; i++ {
		i := i
		DefineInstruction(0x01|i<<4, fmt.Sprintf("LD %s, d16", pairNames[i]), 3, 3, func(c *CPU) {
			c.setPair(i, c.n16())
		})
	}

	// indirect loads through BC, DE and HL with post increment or decrement
	indirect := []struct {
		name    string
		address func(c *CPU) uint16
	}{
		{"(BC)", func(c *CPU) uint16 { return c.BC.Uint16() }},
		{"(DE)", func(c *CPU) uint16 { return c.DE.Uint16() }},
		{"(HL+)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl + 1)
			return hl
		}},
		{"(HL-)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl - 1)
			return hl
		}},
	}
	for i, mode := range indirect {
		address := mode.address
		DefineInstruction(0x02|uint8(i)<<4, fmt.Sprintf("LD %s, A", mode.name), 1, 2, func(c *CPU) {
			c.bus.Write(address(c), c.Get(A))
		})
		DefineInstruction(0x0A|uint8(i)<<4, fmt.Sprintf("LD A, %s", mode.name), 1, 2, func(c *CPU) {
			c.Set(A, c.bus.Read(address(c)))
		})
	}

	DefineInstruction(0x08, "LD (a16), SP", 3, 5, func(c *CPU) {
		c.bus.Write(c.n16(), uint8(c.SP))
		c.bus.Write(c.n16()+1, uint8(c.SP>>8))
	})

	// high page loads
	DefineInstruction(0xE0, "LDH (a8), A", 2, 3, func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.n8()), c.Get(A))
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 2, 3, func(c *CPU) {
		c.Set(A, c.bus.Read(0xFF00|uint16(c.n8())))
	})
	DefineInstruction(0xE2, "LD (C), A", 1, 2, func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.Get(C)), c.Get(A))
	})
	DefineInstruction(0xF2, "LD A, (C)", 1, 2, func(c *CPU) {
		c.Set(A, c.bus.Read(0xFF00|uint16(c.Get(C))))
	})
	DefineInstruction(0xEA, "LD (a16), A", 3, 4, func(c *CPU) {
		c.bus.Write(c.n16(), c.Get(A))
	})
	DefineInstruction(0xFA, "LD A, (a16)", 3, 4, func(c *CPU) {
		c.Set(A, c.bus.Read(c.n16()))
	})

	// stack
	DefineInstruction(0xF9, "LD SP, HL", 1, 2, func(c *CPU) {
		c.SP = c.HL.Uint16()
	})

	// load SP plus a signed immediate into HL
	//
	//	LD HL, SP+e8
	//
	// Flags affected:
	//
	//	Z - Reset.
	//	N - Reset.
	//	H - Set if carry from bit 3.
	//	C - Set if carry from bit 7.
	DefineInstruction(0xF8, "LD HL, SP+e8", 2, 3, func(c *CPU) {
		r := alu.AddSigned(c.SP, c.n8())
		c.HL.SetUint16(r.Value())
		c.setFlags(r.Flags())
	})

	for i := uint8(0); i < 4; i++ {
		i := i
		name := pairNames[i]
		if i == 3 {
			name = "AF"
		}
		DefineInstruction(0xC5|i<<4, "PUSH "+name, 1, 4, func(c *CPU) {
			if i == 3 {
				c.push(c.AF.Uint16())
				return
			}
			c.push(c.pair(i))
		})
		DefineInstruction(0xC1|i<<4, "POP "+name, 1, 3, func(c *CPU) {
			if i == 3 {
				c.AF.SetUint16(c.pop()) // the low nibble of F is masked
				return
			}
			c.setPair(i, c.pop())
		})
	}
}
