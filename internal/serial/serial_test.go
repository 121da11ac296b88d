package serial

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/scheduler"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// newTestController returns a controller driven by its own scheduler,
// with a divider that advances 4 ticks per cycle.
func newTestController() (*Controller, *scheduler.Scheduler, *interrupts.Service) {
	irq := interrupts.NewService()
	s := scheduler.NewScheduler()
	var div uint16
	s.Register(types.ClockedFunc(func(uint64) error {
		div += 4
		return nil
	}))
	return NewController(irq, s, func() uint16 { return div }), s, irq
}

func read(t *testing.T, c *Controller, address uint16) uint8 {
	t.Helper()
	v, ok := c.Read(address)
	if !ok {
		t.Fatalf("expected serial to answer 0x%04X", address)
	}
	return v
}

func TestController_Transfer(t *testing.T) {
	c, s, irq := newTestController()
	var out bytes.Buffer
	c.SetOutput(&out)

	c.Write(types.SB, 0x42)
	c.Write(types.SC, 0x81)
	if v := read(t, c, types.SC); v != 0xFF {
		t.Errorf("expected SC to read 0xFF during a transfer, got 0x%02X", v)
	}
	if out.String() != "\x42" {
		t.Errorf("expected 0x42 to be copied to the output, got %q", out.String())
	}

	// the last bit is shifted on cycle 8 * CyclesPerBit
	if err := s.RunUntil(8 * CyclesPerBit); err != nil {
		t.Fatal(err)
	}
	if irq.Flag()&interrupts.SerialFlag != 0 {
		t.Fatalf("expected transfer to still be in progress")
	}
	if err := s.RunUntil(8*CyclesPerBit + 1); err != nil {
		t.Fatal(err)
	}
	if irq.Flag()&interrupts.SerialFlag == 0 {
		t.Errorf("expected serial interrupt to be requested")
	}
	if v := read(t, c, types.SB); v != 0xFF {
		t.Errorf("expected 0xFF to be received from a disconnected cable, got 0x%02X", v)
	}
	if v := read(t, c, types.SC); v != 0x7F {
		t.Errorf("expected the transfer bit to be cleared, got 0x%02X", v)
	}
	if c.Err() != nil {
		t.Errorf("unexpected output error: %v", c.Err())
	}
}

func TestController_ExternalClock(t *testing.T) {
	c, s, irq := newTestController()
	c.Write(types.SB, 0x42)
	c.Write(types.SC, 0x80)
	if err := s.RunUntil(10 * CyclesPerBit); err != nil {
		t.Fatal(err)
	}
	if irq.Flag() != 0 || read(t, c, types.SB) != 0x42 {
		t.Errorf("expected no transfer without an external clock")
	}
}

func TestController_Link(t *testing.T) {
	master, s, masterIRQ := newTestController()
	slave, _, slaveIRQ := newTestController()
	master.Attach(slave)
	slave.Attach(master)

	master.Write(types.SB, 0x12)
	slave.Write(types.SB, 0x34)
	slave.Write(types.SC, 0x80)
	master.Write(types.SC, 0x81)

	if err := s.RunUntil(9 * CyclesPerBit); err != nil {
		t.Fatal(err)
	}
	if v := read(t, master, types.SB); v != 0x34 {
		t.Errorf("expected master to receive 0x34, got 0x%02X", v)
	}
	if v := read(t, slave, types.SB); v != 0x12 {
		t.Errorf("expected slave to receive 0x12, got 0x%02X", v)
	}
	if masterIRQ.Flag()&interrupts.SerialFlag == 0 || slaveIRQ.Flag()&interrupts.SerialFlag == 0 {
		t.Errorf("expected both sides to request the serial interrupt")
	}
}

func TestController_State(t *testing.T) {
	c, _, _ := newTestController()
	c.Write(types.SB, 0x99)
	c.Write(types.SC, 0x01)

	st := types.NewState()
	c.Save(st)
	loaded, _, _ := newTestController()
	loaded.Load(types.StateFromBytes(st.Bytes()))
	if read(t, loaded, types.SB) != 0x99 || read(t, loaded, types.SC) != 0x7F {
		t.Errorf("expected SB and SC to be restored")
	}
}
