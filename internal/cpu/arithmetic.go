package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/alu"
)

// aluNames are the 8-bit operations on A, in the order they are
// encoded in the opcode.
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// arithmetic performs the encoded 8-bit operation op on A and value.
// CP is a SUB that discards its result.
func (c *CPU) arithmetic(op uint8, value uint8) {
	a := c.Get(A)
	var r alu.Result
	switch op {
	case 0:
		r = alu.Add(a, value, false)
	case 1:
		r = alu.Add(a, value, c.flag(alu.FlagCarry))
	case 2, 7:
		r = alu.Sub(a, value, false)
	case 3:
		r = alu.Sub(a, value, c.flag(alu.FlagCarry))
	case 4:
		r = alu.And(a, value)
	case 5:
		r = alu.Xor(a, value)
	case 6:
		r = alu.Or(a, value)
	}
	if op != 7 {
		c.Set(A, r.Byte())
	}
	c.setFlags(r.Flags())
}

func defineArithmetic() {
	for i := uint8(0); i < 8; i++ {
		i := i

		// increment
		//
		//	INC r
		//
		// Flags affected:
		//
		//	Z - Set if result is zero.
		//	N - Reset.
		//	H - Set if carry from bit 3.
		//	C - Not affected.
		DefineInstruction(0x04|i<<3, "INC "+operandNames[i], 1, cycles8(i, 1, 3), func(c *CPU) {
			r := alu.Inc(c.readOperand(i), c.flag(alu.FlagCarry))
			c.writeOperand(i, r.Byte())
			c.setFlags(r.Flags())
		})

		// decrement
		//
		//	DEC r
		//
		// Flags affected:
		//
		//	Z - Set if result is zero.
		//	N - Set.
		//	H - Set if borrow from bit 4.
		//	C - Not affected.
		DefineInstruction(0x05|i<<3, "DEC "+operandNames[i], 1, cycles8(i, 1, 3), func(c *CPU) {
			r := alu.Dec(c.readOperand(i), c.flag(alu.FlagCarry))
			c.writeOperand(i, r.Byte())
			c.setFlags(r.Flags())
		})

		// ADD, ADC, SUB, SBC, AND, XOR, OR and CP on A
		for src := uint8(0); src < 8; src++ {
			src := src
			DefineInstruction(0x80|i<<3|src, fmt.Sprintf("%s %s", aluNames[i], operandNames[src]), 1, cycles8(src, 1, 2), func(c *CPU) {
				c.arithmetic(i, c.readOperand(src))
			})
		}
		DefineInstruction(0xC6|i<<3, aluNames[i]+" d8", 2, 2, func(c *CPU) {
			c.arithmetic(i, c.n8())
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		DefineInstruction(0x03|i<<4, "INC "+pairNames[i], 1, 2, func(c *CPU) {
			c.setPair(i, c.pair(i)+1)
		})
		DefineInstruction(0x0B|i<<4, "DEC "+pairNames[i], 1, 2, func(c *CPU) {
			c.setPair(i, c.pair(i)-1)
		})

		// add to HL
		//
		//	ADD HL, rr
		//
		// Flags affected:
		//
		//	Z - Not affected.
		//	N - Reset.
		//	H - Set if carry from bit 11.
		//	C - Set if carry from bit 15.
		DefineInstruction(0x09|i<<4, "ADD HL, "+pairNames[i], 1, 2, func(c *CPU) {
			r := alu.Add16HL(c.HL.Uint16(), c.pair(i))
			c.HL.SetUint16(r.Value())
			c.setFlags(c.Get(F)&flagZ | r.Flags()&^flagZ)
		})
	}

	// add a signed immediate to SP
	//
	//	ADD SP, e8
	//
	// Flags affected:
	//
	//	Z - Reset.
	//	N - Reset.
	//	H - Set if carry from bit 3.
	//	C - Set if carry from bit 7.
	DefineInstruction(0xE8, "ADD SP, e8", 2, 4, func(c *CPU) {
		r := alu.AddSigned(c.SP, c.n8())
		c.SP = r.Value()
		c.setFlags(r.Flags())
	})

	// rotates of A reset the zero flag, unlike their prefixed
	// counterparts
	accumulator := []struct {
		opcode uint8
		name   string
		fn     func(c *CPU, a uint8) alu.Result
	}{
		{0x07, "RLCA", func(c *CPU, a uint8) alu.Result { return alu.Rotate(alu.Left, a) }},
		{0x0F, "RRCA", func(c *CPU, a uint8) alu.Result { return alu.Rotate(alu.Right, a) }},
		{0x17, "RLA", func(c *CPU, a uint8) alu.Result { return alu.RotateThroughCarry(alu.Left, a, c.flag(alu.FlagCarry)) }},
		{0x1F, "RRA", func(c *CPU, a uint8) alu.Result { return alu.RotateThroughCarry(alu.Right, a, c.flag(alu.FlagCarry)) }},
	}
	for _, rot := range accumulator {
		fn := rot.fn
		DefineInstruction(rot.opcode, rot.name, 1, 1, func(c *CPU) {
			r := fn(c, c.Get(A))
			c.Set(A, r.Byte())
			c.setFlags(r.Flags() &^ flagZ)
		})
	}
}
