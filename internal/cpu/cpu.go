// Package cpu provides the execution engine of the Game Boy CPU (Sharp
// LR35902).
//
// Instructions are executed atomically on the first cycle they are
// scheduled for, after which the CPU idles until the number of machine
// cycles the instruction takes on hardware has elapsed. Peripherals
// observe the effects of an instruction on the cycle it starts.
package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/internal/types/registers"
)

// ErrIllegalOpcode is returned when the CPU fetches one of the opcodes
// that are not mapped to an instruction. Once returned, the CPU is
// locked, and every further cycle returns the same error.
var ErrIllegalOpcode = errors.New("cpu: illegal opcode")

const (
	// ClockSpeed is the clock speed of the CPU, in T-cycles per second.
	ClockSpeed = 4194304
	// CyclesPerSecond is the number of machine cycles per second.
	CyclesPerSecond = ClockSpeed / 4
)

// Bus is the memory bus the CPU fetches instructions from and
// performs loads and stores through.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, and left once an enabled
	// interrupt is pending, regardless of IME.
	ModeHalt
	// ModeStop is entered by STOP, and left on a joypad
	// interrupt request.
	ModeStop
)

// Register is one of the 8-bit registers of the CPU.
type Register uint8

const (
	A Register = iota
	F
	B
	C
	D
	E
	H
	L

	registerCount
)

var registerNames = [registerCount]string{"A", "F", "B", "C", "D", "E", "H", "L"}

func (r Register) String() string {
	if r < registerCount {
		return registerNames[r]
	}
	return "?"
}

// CPU represents the Game Boy CPU. It is responsible for executing
// instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16

	// AF, BC, DE and HL are the 16-bit register pairs.
	AF, BC, DE, HL registers.Pair[Register]

	regs *registers.File[Register]
	bus  Bus
	irq  *interrupts.Service

	next      uint64 // next cycle the CPU does any work
	mode      mode
	enableIME bool // EI executed, IME is set before the next instruction
	haltBug   bool // next opcode fetch does not increment PC
	operand   uint16
	branched  bool
	err       error

	onStop func()
}

// NewCPU creates a new CPU that executes from bus, and services the
// interrupts of irq.
func NewCPU(bus Bus, irq *interrupts.Service) *CPU {
	c := &CPU{
		regs: registers.NewFile[Register](int(registerCount)).WithMask(F, 0xF0),
		bus:  bus,
		irq:  irq,
	}
	// create register pairs
	c.AF = c.regs.Pair(A, F)
	c.BC = c.regs.Pair(B, C)
	c.DE = c.regs.Pair(D, E)
	c.HL = c.regs.Pair(H, L)

	return c
}

// OnStop sets the function called when the CPU executes STOP. The
// machine uses it to reset the divider of the timer.
func (c *CPU) OnStop(fn func()) {
	c.onStop = fn
}

// Get returns the value of r.
func (c *CPU) Get(r Register) uint8 {
	return c.regs.Get(r)
}

// Set sets r to value. The low nibble of F is always 0.
func (c *CPU) Set(r Register, value uint8) {
	c.regs.Set(r, value)
}

// Store sets r to a value that has not been range checked.
func (c *CPU) Store(r Register, value int) error {
	return c.regs.Store(r, value)
}

// Halted returns true if the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.mode != ModeNormal
}

// Err returns the error that locked the CPU, if any.
func (c *CPU) Err() error {
	return c.err
}

// Cycle implements types.Clocked. The CPU only does work on the cycle
// the previous instruction (or interrupt dispatch) completes.
func (c *CPU) Cycle(cycle uint64) error {
	if c.err != nil {
		return c.err
	}
	if cycle < c.next {
		return nil
	}

	cost, err := c.step()
	if err != nil {
		c.err = err
		return err
	}
	c.next = cycle + uint64(cost)
	return nil
}

// step handles a low power mode, a pending interrupt, or a single
// instruction, and returns the number of machine cycles it took.
func (c *CPU) step() (uint8, error) {
	switch c.mode {
	case ModeHalt:
		if !c.irq.HasInterrupts() {
			return 1, nil
		}
		c.mode = ModeNormal
	case ModeStop:
		if c.irq.Flag()&interrupts.JoypadFlag == 0 {
			return 1, nil
		}
		c.mode = ModeNormal
	}

	if c.irq.IME && c.irq.HasInterrupts() {
		return c.dispatch(), nil
	}

	// EI takes effect after the instruction that follows it
	if c.enableIME {
		c.irq.IME = true
		c.enableIME = false
	}

	return c.execute()
}

// dispatch services the highest priority pending interrupt: IME is
// reset, PC is pushed on to the stack and the CPU jumps to the
// interrupt's vector.
func (c *CPU) dispatch() uint8 {
	vector, _ := c.irq.Vector()
	c.irq.IME = false
	c.push(c.PC)
	c.PC = vector
	return 5
}

// execute fetches, decodes and executes a single instruction.
func (c *CPU) execute() (uint8, error) {
	pc := c.PC
	opcode := c.bus.Read(pc)

	// HALT bug: the byte after HALT is read twice
	if c.haltBug {
		c.haltBug = false
	} else {
		pc++
	}

	var instruction *Instruction
	if opcode == 0xCB {
		instruction = &InstructionSetCB[c.bus.Read(pc)]
		pc++
	} else {
		instruction = &InstructionSet[opcode]
		if instruction.fn == nil {
			return 0, fmt.Errorf("%w 0x%02X at 0x%04X", ErrIllegalOpcode, opcode, c.PC)
		}

		switch instruction.length {
		case 2:
			c.operand = uint16(c.bus.Read(pc))
		case 3:
			c.operand = uint16(c.bus.Read(pc)) | uint16(c.bus.Read(pc+1))<<8
		}
		pc += uint16(instruction.length) - 1
	}
	c.PC = pc

	c.branched = false
	instruction.fn(c)
	if c.branched {
		return instruction.cycles + instruction.branchCycles, nil
	}
	return instruction.cycles, nil
}

// n8 returns the 8-bit immediate operand of the current instruction.
func (c *CPU) n8() uint8 {
	return uint8(c.operand)
}

// n16 returns the 16-bit immediate operand of the current instruction.
func (c *CPU) n16() uint16 {
	return c.operand
}

func (c *CPU) flag(f uint8) bool {
	return c.regs.TestBit(F, uint(f))
}

func (c *CPU) setFlags(flags uint8) {
	c.regs.Set(F, flags)
}

// push pushes a 16-bit value on to the stack.
func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// pop pops a 16-bit value from the stack.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// Snapshot is a copy of the externally observable state of the CPU.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	Halted                 bool
}

func (s Snapshot) String() string {
	return fmt.Sprintf("A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X IME: %t",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC, s.IME)
}

// Registers returns a snapshot of the registers.
func (c *CPU) Registers() Snapshot {
	return Snapshot{
		A: c.Get(A), F: c.Get(F),
		B: c.Get(B), C: c.Get(C),
		D: c.Get(D), E: c.Get(E),
		H: c.Get(H), L: c.Get(L),
		SP:     c.SP,
		PC:     c.PC,
		IME:    c.irq.IME,
		Halted: c.Halted(),
	}
}

// SetRegisters loads the registers from s, such as when skipping the
// boot ROM. The Halted field is ignored.
func (c *CPU) SetRegisters(s Snapshot) {
	c.Set(A, s.A)
	c.Set(F, s.F)
	c.Set(B, s.B)
	c.Set(C, s.C)
	c.Set(D, s.D)
	c.Set(E, s.E)
	c.Set(H, s.H)
	c.Set(L, s.L)
	c.SP = s.SP
	c.PC = s.PC
	c.irq.IME = s.IME
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface. The interrupt service
// is loaded along with the CPU.
func (c *CPU) Load(s *types.State) {
	for r := A; r < registerCount; r++ {
		c.Set(r, s.Read8())
	}
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = s.Read8()
	c.enableIME = s.ReadBool()
	c.haltBug = s.ReadBool()
	c.next = s.Read64()
	c.err = nil
	c.irq.Load(s)
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	for r := A; r < registerCount; r++ {
		s.Write8(c.Get(r))
	}
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.mode)
	s.WriteBool(c.enableIME)
	s.WriteBool(c.haltBug)
	s.Write64(c.next)
	c.irq.Save(s)
}
