package timer

import (
	"testing"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

func newTestTimer() (*Controller, *interrupts.Service) {
	irq := interrupts.NewService()
	return NewController(irq), irq
}

func read(t *testing.T, c *Controller, address uint16) uint8 {
	t.Helper()
	v, ok := c.Read(address)
	if !ok {
		t.Fatalf("expected timer to answer 0x%04X", address)
	}
	return v
}

func step(t *testing.T, c *Controller, cycles int) {
	t.Helper()
	for i := 0; i < cycles; i++ {
		if err := c.Cycle(uint64(i)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTimer_Overflow(t *testing.T) {
	c, irq := newTestTimer()
	c.Write(types.TMA, 0x42)
	c.Write(types.TAC, 0b101) // enabled, bit 3
	c.Write(types.TIMA, 0xFF)

	// bit 3 of the divider rises after 2 cycles and falls after 4
	step(t, c, 3)
	if v := read(t, c, types.TIMA); v != 0xFF {
		t.Fatalf("expected TIMA to still be 0xFF, got 0x%02X", v)
	}
	if irq.Flag()&interrupts.TimerFlag != 0 {
		t.Fatalf("expected no timer interrupt yet")
	}
	step(t, c, 1)
	if v := read(t, c, types.TIMA); v != 0x42 {
		t.Errorf("expected TIMA to be reloaded with 0x42, got 0x%02X", v)
	}
	if irq.Flag()&interrupts.TimerFlag == 0 {
		t.Errorf("expected timer interrupt to be pending")
	}
}

func TestTimer_Disabled(t *testing.T) {
	c, irq := newTestTimer()
	c.Write(types.TAC, 0b001) // disabled, bit 3
	c.Write(types.TIMA, 0xFF)
	step(t, c, 100000)
	if v := read(t, c, types.TIMA); v != 0xFF {
		t.Errorf("expected TIMA to be unchanged, got 0x%02X", v)
	}
	if irq.Flag() != 0 {
		t.Errorf("expected no interrupts, got %08b", irq.Flag())
	}
}

func TestTimer_Frequencies(t *testing.T) {
	// machine cycles per TIMA increment for each clock select
	periods := map[uint8]int{0b00: 256, 0b01: 4, 0b10: 16, 0b11: 64}
	for sel, period := range periods {
		c, _ := newTestTimer()
		c.Write(types.TAC, 0b100|sel)
		step(t, c, period*10)
		if v := read(t, c, types.TIMA); v != 10 {
			t.Errorf("select %02b: expected 10 increments, got %d", sel, v)
		}
	}
}

func TestTimer_Divider(t *testing.T) {
	c, _ := newTestTimer()
	step(t, c, 64)
	if v := read(t, c, types.DIV); v != 1 {
		t.Errorf("expected DIV to be 1 after 64 cycles, got %d", v)
	}
	c.Write(types.DIV, 0xAB)
	if v := read(t, c, types.DIV); v != 0 || c.SysClock() != 0 {
		t.Errorf("expected DIV write to reset the divider, got 0x%04X", c.SysClock())
	}
}

func TestTimer_DividerResetGlitch(t *testing.T) {
	c, _ := newTestTimer()
	c.Write(types.TAC, 0b101)
	step(t, c, 2) // divider = 8, bit 3 high
	if v := read(t, c, types.TIMA); v != 0 {
		t.Fatalf("expected TIMA to be 0, got %d", v)
	}
	c.Write(types.DIV, 0)
	if v := read(t, c, types.TIMA); v != 1 {
		t.Errorf("expected resetting DIV with bit 3 high to increment TIMA, got %d", v)
	}

	// with the selected bit low, resetting DIV does nothing
	c.Write(types.DIV, 0)
	if v := read(t, c, types.TIMA); v != 1 {
		t.Errorf("expected TIMA to stay 1, got %d", v)
	}
}

func TestTimer_ControlGlitch(t *testing.T) {
	c, _ := newTestTimer()
	c.Write(types.TAC, 0b101)
	step(t, c, 2) // divider = 8, bit 3 high

	// disabling the timer while the bit is high is a falling edge
	c.Write(types.TAC, 0b001)
	if v := read(t, c, types.TIMA); v != 1 {
		t.Errorf("expected disabling the timer to increment TIMA, got %d", v)
	}

	// switching to a bit that is low is also a falling edge
	c.Write(types.TAC, 0b101)
	c.Write(types.TAC, 0b110) // bit 5 is low
	if v := read(t, c, types.TIMA); v != 2 {
		t.Errorf("expected switching clock select to increment TIMA, got %d", v)
	}
}

func TestTimer_Registers(t *testing.T) {
	c, _ := newTestTimer()
	c.Write(types.TAC, 0xFF)
	if v := read(t, c, types.TAC); v != 0xFF {
		t.Errorf("expected TAC to read 0xFF, got 0x%02X", v)
	}
	c.Write(types.TAC, 0x00)
	if v := read(t, c, types.TAC); v != 0xF8 {
		t.Errorf("expected TAC to read 0xF8, got 0x%02X", v)
	}
	if _, ok := c.Read(types.IF); ok {
		t.Errorf("expected timer not to answer IF")
	}
}

func TestTimer_State(t *testing.T) {
	c, _ := newTestTimer()
	c.Write(types.TAC, 0b110)
	c.Write(types.TMA, 0x10)
	c.Write(types.TIMA, 0x20)
	step(t, c, 123)

	st := types.NewState()
	c.Save(st)
	loaded, _ := newTestTimer()
	loaded.Load(types.StateFromBytes(st.Bytes()))

	if loaded.SysClock() != c.SysClock() {
		t.Errorf("expected divider 0x%04X, got 0x%04X", c.SysClock(), loaded.SysClock())
	}
	for _, addr := range []uint16{types.TIMA, types.TMA, types.TAC} {
		if read(t, loaded, addr) != read(t, c, addr) {
			t.Errorf("0x%04X did not round trip", addr)
		}
	}
}
