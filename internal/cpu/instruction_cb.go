package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/alu"
)

// cbNames are the rotate, shift and swap operations of the
// prefixed table, in the order they are encoded in the opcode.
var cbNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// rotate performs the encoded prefixed operation op on value.
func (c *CPU) rotate(op uint8, value uint8) alu.Result {
	switch op {
	case 0:
		return alu.Rotate(alu.Left, value)
	case 1:
		return alu.Rotate(alu.Right, value)
	case 2:
		return alu.RotateThroughCarry(alu.Left, value, c.flag(alu.FlagCarry))
	case 3:
		return alu.RotateThroughCarry(alu.Right, value, c.flag(alu.FlagCarry))
	case 4:
		return alu.ShiftLeft(value)
	case 5:
		return alu.ShiftRightArithmetic(value)
	case 6:
		return alu.SwapNibbles(value)
	}
	return alu.ShiftRightLogical(value)
}

func defineCB() {
	for op := uint8(0); op < 8; op++ {
		for i := uint8(0); i < 8; i++ {
			op, i := op, i

			// 0x00 - 0x3F rotates, shifts and swaps
			DefineInstructionCB(op<<3|i, fmt.Sprintf("%s %s", cbNames[op], operandNames[i]), cycles8(i, 2, 4), func(c *CPU) {
				r := c.rotate(op, c.readOperand(i))
				c.writeOperand(i, r.Byte())
				c.setFlags(r.Flags())
			})

			// op is the bit index for BIT, RES and SET
			bit := uint(op)

			// test bit
			//
			//	BIT n, r
			//
			// Flags affected:
			//
			//	Z - Set if bit n of r is 0.
			//	N - Reset.
			//	H - Set.
			//	C - Not affected.
			DefineInstructionCB(0x40|op<<3|i, fmt.Sprintf("BIT %d, %s", bit, operandNames[i]), cycles8(i, 2, 3), func(c *CPU) {
				r := alu.TestBit(c.readOperand(i), bit, c.flag(alu.FlagCarry))
				c.setFlags(r.Flags())
			})
			DefineInstructionCB(0x80|op<<3|i, fmt.Sprintf("RES %d, %s", bit, operandNames[i]), cycles8(i, 2, 4), func(c *CPU) {
				c.writeOperand(i, c.readOperand(i)&^(1<<bit))
			})
			DefineInstructionCB(0xC0|op<<3|i, fmt.Sprintf("SET %d, %s", bit, operandNames[i]), cycles8(i, 2, 4), func(c *CPU) {
				c.writeOperand(i, c.readOperand(i)|1<<bit)
			})
		}
	}
}
