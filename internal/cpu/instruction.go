package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/alu"
)

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	name         string     // name of the instruction
	length       uint8      // length in bytes, including the opcode
	cycles       uint8      // machine cycles, when a branch is not taken
	branchCycles uint8      // additional machine cycles when a branch is taken
	fn           func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the length of the instruction in bytes.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the number of machine cycles the instruction takes
// when a branch is not taken.
func (i Instruction) Cycles() uint8 { return i.cycles }

// BranchCycles returns the number of additional machine cycles the
// instruction takes when a branch is taken.
func (i Instruction) BranchCycles() uint8 { return i.branchCycles }

// Illegal returns true if the opcode is not mapped to an instruction.
func (i Instruction) Illegal() bool { return i.fn == nil }

// InstructionSet holds the 256 unprefixed instructions.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// illegalOpcodes are not mapped to an instruction on hardware, and
// lock up the CPU.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, length, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, length: length, cycles: cycles, fn: fn}
}

// DefineBranch is DefineInstruction for conditional instructions, which
// take branchCycles more cycles when their condition is met.
func DefineBranch(opcode uint8, name string, length, cycles, branchCycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, length: length, cycles: cycles, branchCycles: branchCycles, fn: fn}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, length: 2, cycles: cycles, fn: fn}
}

// operandNames are the names of the 8-bit operands, in the order they
// are encoded in the opcode.
var operandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// operandRegisters maps an encoded 8-bit operand to its register.
// Index 6 is (HL) and is never looked up.
var operandRegisters = [8]Register{B, C, D, E, H, L, 0, A}

// pairNames are the names of the 16-bit operands used by loads and
// arithmetic; PUSH and POP use AF in place of SP.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// readOperand reads the encoded 8-bit operand i.
func (c *CPU) readOperand(i uint8) uint8 {
	if i == 6 {
		return c.bus.Read(c.HL.Uint16())
	}
	return c.regs.Get(operandRegisters[i])
}

// writeOperand writes the encoded 8-bit operand i.
func (c *CPU) writeOperand(i uint8, value uint8) {
	if i == 6 {
		c.bus.Write(c.HL.Uint16(), value)
		return
	}
	c.regs.Set(operandRegisters[i], value)
}

// pair returns the encoded 16-bit operand i.
func (c *CPU) pair(i uint8) uint16 {
	switch i {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	}
	return c.SP
}

// setPair sets the encoded 16-bit operand i.
func (c *CPU) setPair(i uint8, value uint16) {
	switch i {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// condition evaluates the encoded branch condition i.
func (c *CPU) condition(i uint8) bool {
	switch i {
	case 0:
		return !c.flag(alu.FlagZero)
	case 1:
		return c.flag(alu.FlagZero)
	case 2:
		return !c.flag(alu.FlagCarry)
	}
	return c.flag(alu.FlagCarry)
}

// cycles8 returns the cost of an instruction operating on the encoded
// 8-bit operand i, where (HL) costs extra cycles.
func cycles8(i uint8, register, memory uint8) uint8 {
	if i == 6 {
		return memory
	}
	return register
}

func init() {
	defineControl()
	defineLoads()
	defineArithmetic()
	defineJumps()
	defineCB()

	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = Instruction{name: fmt.Sprintf("ILLEGAL_%02X", opcode), length: 1}
	}
	// 0xCB is decoded as a prefix
	InstructionSet[0xCB] = Instruction{name: "PREFIX CB", length: 1, cycles: 1, fn: func(*CPU) {}}
}
