package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gomeboy-core/internal/alu"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// memory is a flat 64KiB bus.
type memory [0x10000]uint8

func (m *memory) Read(address uint16) uint8         { return m[address] }
func (m *memory) Write(address uint16, value uint8) { m[address] = value }

// newTestCPU returns a CPU with program loaded at 0x0100, where
// execution starts.
func newTestCPU(program ...uint8) (*CPU, *memory) {
	mem := &memory{}
	copy(mem[0x0100:], program)
	c := NewCPU(mem, interrupts.NewService())
	c.PC = 0x0100
	c.SP = 0xFFFE
	return c, mem
}

// step executes a single instruction, and returns the number of
// cycles it took.
func step(t *testing.T, c *CPU) uint8 {
	t.Helper()
	cost, err := c.step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cost
}

func TestCPU_Cycle(t *testing.T) {
	// LD B, d8 (2); INC B (1); NOP (1)
	c, _ := newTestCPU(0x06, 0x41, 0x04, 0x00)

	var cycle uint64
	for ; cycle < 2; cycle++ {
		if err := c.Cycle(cycle); err != nil {
			t.Fatal(err)
		}
		if c.Get(B) != 0x41 || c.PC != 0x0102 {
			t.Fatalf("cycle %d: expected LD B, d8 to have executed, got B=0x%02X PC=0x%04X", cycle, c.Get(B), c.PC)
		}
	}
	if err := c.Cycle(cycle); err != nil {
		t.Fatal(err)
	}
	if c.Get(B) != 0x42 {
		t.Errorf("expected INC B on cycle 2, got B=0x%02X", c.Get(B))
	}
}

func TestCPU_IllegalOpcode(t *testing.T) {
	for _, opcode := range illegalOpcodes {
		c, _ := newTestCPU(opcode)
		err := c.Cycle(0)
		if !errors.Is(err, ErrIllegalOpcode) {
			t.Fatalf("0x%02X: expected ErrIllegalOpcode, got %v", opcode, err)
		}
		if c.PC != 0x0100 {
			t.Errorf("0x%02X: expected PC to stay at the opcode, got 0x%04X", opcode, c.PC)
		}
		// the CPU is locked
		for i := uint64(1); i < 4; i++ {
			if err2 := c.Cycle(i); err2 != err {
				t.Errorf("0x%02X: expected the same error on cycle %d, got %v", opcode, i, err2)
			}
		}
	}
}

func TestCPU_Interrupts(t *testing.T) {
	t.Run("dispatch", func(t *testing.T) {
		c, mem := newTestCPU(0x00)
		c.irq.IME = true
		c.irq.SetEnable(interrupts.TimerFlag | interrupts.SerialFlag)
		c.irq.Request(interrupts.Serial)
		c.irq.Request(interrupts.Timer)

		if cost := step(t, c); cost != 5 {
			t.Errorf("expected dispatch to take 5 cycles, got %d", cost)
		}
		if c.PC != 0x0050 {
			t.Errorf("expected PC to be 0x0050, got 0x%04X", c.PC)
		}
		if c.irq.IME {
			t.Errorf("expected IME to be reset")
		}
		if c.irq.Flag() != interrupts.SerialFlag {
			t.Errorf("expected only the timer flag to be cleared, got %08b", c.irq.Flag())
		}
		if c.SP != 0xFFFC || mem[0xFFFD] != 0x01 || mem[0xFFFC] != 0x00 {
			t.Errorf("expected PC to be pushed, got SP=0x%04X [%02X %02X]", c.SP, mem[0xFFFD], mem[0xFFFC])
		}
	})
	t.Run("disabled", func(t *testing.T) {
		c, _ := newTestCPU(0x00, 0x00)
		c.irq.SetEnable(interrupts.VBlankFlag)
		c.irq.Request(interrupts.VBlank)
		step(t, c)
		if c.PC != 0x0101 {
			t.Errorf("expected no dispatch with IME reset, got PC=0x%04X", c.PC)
		}
	})
	t.Run("EI delay", func(t *testing.T) {
		// EI; NOP; NOP
		c, _ := newTestCPU(0xFB, 0x00, 0x00)
		c.irq.SetEnable(interrupts.VBlankFlag)
		c.irq.Request(interrupts.VBlank)

		step(t, c) // EI
		if c.irq.IME {
			t.Errorf("expected IME to be set after the next instruction")
		}
		step(t, c) // NOP
		if c.PC != 0x0102 || !c.irq.IME {
			t.Fatalf("expected the instruction after EI to execute, got PC=0x%04X IME=%t", c.PC, c.irq.IME)
		}
		step(t, c) // dispatch
		if c.PC != 0x0040 {
			t.Errorf("expected dispatch to 0x0040, got 0x%04X", c.PC)
		}
	})
	t.Run("EI DI", func(t *testing.T) {
		// EI; DI; NOP
		c, _ := newTestCPU(0xFB, 0xF3, 0x00)
		c.irq.SetEnable(interrupts.VBlankFlag)
		c.irq.Request(interrupts.VBlank)
		step(t, c)
		step(t, c)
		step(t, c)
		if c.PC != 0x0103 || c.irq.IME {
			t.Errorf("expected DI to cancel EI, got PC=0x%04X IME=%t", c.PC, c.irq.IME)
		}
	})
	t.Run("RETI", func(t *testing.T) {
		c, mem := newTestCPU(0xD9)
		c.SP = 0xFFFC
		mem[0xFFFC], mem[0xFFFD] = 0x34, 0x12
		step(t, c)
		if c.PC != 0x1234 || !c.irq.IME {
			t.Errorf("expected RETI to return with IME set, got PC=0x%04X IME=%t", c.PC, c.irq.IME)
		}
	})
}

func TestCPU_Halt(t *testing.T) {
	t.Run("wake and dispatch", func(t *testing.T) {
		c, _ := newTestCPU(0x76, 0x00)
		c.irq.IME = true
		c.irq.SetEnable(interrupts.JoypadFlag)
		step(t, c)
		if !c.Halted() {
			t.Fatalf("expected CPU to be halted")
		}
		for i := 0; i < 10; i++ {
			if cost := step(t, c); cost != 1 || c.PC != 0x0101 {
				t.Fatalf("expected halted CPU to idle, got cost %d PC=0x%04X", cost, c.PC)
			}
		}
		c.irq.Request(interrupts.Joypad)
		step(t, c)
		if c.Halted() || c.PC != 0x0060 {
			t.Errorf("expected joypad interrupt to be serviced, got PC=0x%04X", c.PC)
		}
	})
	t.Run("wake without dispatch", func(t *testing.T) {
		// HALT; INC A
		c, _ := newTestCPU(0x76, 0x3C)
		c.irq.SetEnable(interrupts.TimerFlag)
		step(t, c)
		if !c.Halted() {
			t.Fatalf("expected CPU to be halted")
		}
		c.irq.Request(interrupts.Timer)
		step(t, c)
		if c.Halted() || c.PC != 0x0102 || c.Get(A) != 1 {
			t.Errorf("expected execution to resume after HALT, got PC=0x%04X A=%d", c.PC, c.Get(A))
		}
		if c.irq.Flag() != interrupts.TimerFlag {
			t.Errorf("expected the interrupt to stay pending")
		}
	})
	t.Run("halt bug", func(t *testing.T) {
		// HALT; INC A; NOP
		c, _ := newTestCPU(0x76, 0x3C, 0x00)
		c.irq.SetEnable(interrupts.TimerFlag)
		c.irq.Request(interrupts.Timer)
		step(t, c)
		if c.Halted() {
			t.Fatalf("expected HALT not to halt with an interrupt pending")
		}
		step(t, c)
		if c.PC != 0x0101 {
			t.Errorf("expected PC not to be incremented, got 0x%04X", c.PC)
		}
		step(t, c)
		if c.Get(A) != 2 || c.PC != 0x0102 {
			t.Errorf("expected INC A to execute twice, got A=%d PC=0x%04X", c.Get(A), c.PC)
		}
	})
	t.Run("halt bug operand", func(t *testing.T) {
		// HALT; LD B, d8 reads its own opcode as the operand
		c, _ := newTestCPU(0x76, 0x06, 0x42)
		c.irq.SetEnable(interrupts.TimerFlag)
		c.irq.Request(interrupts.Timer)
		step(t, c)
		step(t, c)
		if c.Get(B) != 0x06 || c.PC != 0x0102 {
			t.Errorf("expected B=0x06 PC=0x0102, got B=0x%02X PC=0x%04X", c.Get(B), c.PC)
		}
	})
}

func TestCPU_Stop(t *testing.T) {
	// STOP; padding; INC A
	c, _ := newTestCPU(0x10, 0x00, 0x3C)
	stopped := false
	c.OnStop(func() { stopped = true })
	step(t, c)
	if !stopped || !c.Halted() {
		t.Fatalf("expected STOP to call the handler and stop the CPU")
	}
	if c.PC != 0x0102 {
		t.Errorf("expected STOP to skip its padding byte, got PC=0x%04X", c.PC)
	}
	step(t, c)
	if c.Get(A) != 0 {
		t.Errorf("expected stopped CPU not to execute")
	}
	c.irq.Request(interrupts.Joypad)
	step(t, c)
	if c.Get(A) != 1 {
		t.Errorf("expected joypad to resume execution, got A=%d", c.Get(A))
	}
}

func TestCPU_Registers(t *testing.T) {
	c, _ := newTestCPU()
	c.Set(F, 0xFF)
	if c.Get(F) != 0xF0 {
		t.Errorf("expected the low nibble of F to read 0, got 0x%02X", c.Get(F))
	}
	c.AF.SetUint16(0x12FF)
	if c.AF.Uint16() != 0x12F0 {
		t.Errorf("expected AF to be 0x12F0, got 0x%04X", c.AF.Uint16())
	}
	if err := c.Store(B, 0x100); err == nil {
		t.Errorf("expected storing 0x100 to fail")
	}

	want := Snapshot{A: 0x01, F: 0xB0, B: 0x00, C: 0x13, D: 0x00, E: 0xD8, H: 0x01, L: 0x4D, SP: 0xFFFE, PC: 0x0100}
	c.SetRegisters(want)
	if got := c.Registers(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if c.HL.Uint16() != 0x014D {
		t.Errorf("expected HL to be 0x014D, got 0x%04X", c.HL.Uint16())
	}
}

func TestCPU_State(t *testing.T) {
	c, _ := newTestCPU(0xFB, 0x3C)
	c.SetRegisters(Snapshot{A: 0x11, F: 0x80, B: 0x22, C: 0x33, SP: 0xC000, PC: 0x0100})
	c.irq.SetEnable(0x1F)
	step(t, c)

	st := types.NewState()
	c.Save(st)

	loaded, _ := newTestCPU()
	rs := types.StateFromBytes(st.Bytes())
	loaded.Load(rs)
	if err := rs.Err(); err != nil {
		t.Fatal(err)
	}
	if loaded.Registers() != c.Registers() {
		t.Errorf("expected %s, got %s", c.Registers(), loaded.Registers())
	}
	if !loaded.enableIME || loaded.irq.Enable() != 0x1F {
		t.Errorf("expected pending EI and IE to be restored")
	}
}

// flagsOf formats flags the way they are documented.
func flagsOf(f uint8) string {
	s := []byte("----")
	for i, c := range "ZNHC" {
		if f&(1<<(alu.FlagZero-uint(i))) != 0 {
			s[i] = byte(c)
		}
	}
	return string(s)
}
