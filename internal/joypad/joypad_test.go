package joypad

import (
	"testing"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

func p1(t *testing.T, s *State) uint8 {
	t.Helper()
	v, ok := s.Read(types.P1)
	if !ok {
		t.Fatalf("expected joypad to answer P1")
	}
	return v
}

func TestState(t *testing.T) {
	irq := interrupts.NewService()
	s := New(irq)

	if v := p1(t, s); v != 0xFF {
		t.Errorf("expected P1 to read 0xFF with nothing selected, got 0x%02X", v)
	}

	// pressing a button on an unselected line does not interrupt
	s.Press(ButtonStart)
	if irq.Flag() != 0 {
		t.Errorf("expected no interrupt, got %08b", irq.Flag())
	}

	// selecting the line with start held is a high to low transition
	s.Write(types.P1, 0x10)
	if v := p1(t, s); v != 0xD7 {
		t.Errorf("expected P1 to read 0xD7, got 0x%02X", v)
	}
	if irq.Flag()&interrupts.JoypadFlag == 0 {
		t.Errorf("expected joypad interrupt to be requested")
	}

	irq.SetFlag(0)
	s.Press(ButtonDown)
	if v := p1(t, s); v != 0xD7 {
		t.Errorf("expected direction keys to be hidden, got 0x%02X", v)
	}
	if irq.Flag() != 0 {
		t.Errorf("expected no interrupt for an unselected line")
	}

	s.Write(types.P1, 0x00)
	if v := p1(t, s); v != 0xC7 {
		t.Errorf("expected P1 to read 0xC7 with both lines selected, got 0x%02X", v)
	}

	s.Release(ButtonStart)
	s.Release(ButtonDown)
	if v := p1(t, s); v != 0xCF {
		t.Errorf("expected P1 to read 0xCF after releasing, got 0x%02X", v)
	}

	s.Write(types.P1, 0x20)
	irq.SetFlag(0)
	s.Press(ButtonLeft)
	if v := p1(t, s); v != 0xED || !s.Pressed(ButtonLeft) {
		t.Errorf("expected P1 to read 0xED, got 0x%02X", v)
	}
	if irq.Flag()&interrupts.JoypadFlag == 0 {
		t.Errorf("expected joypad interrupt to be requested")
	}
}

func TestState_Save(t *testing.T) {
	s := New(interrupts.NewService())
	s.Write(types.P1, 0x10)
	s.Press(ButtonA)

	st := types.NewState()
	s.Save(st)
	loaded := New(interrupts.NewService())
	loaded.Load(types.StateFromBytes(st.Bytes()))
	if p1(t, loaded) != p1(t, s) {
		t.Errorf("expected P1 to be restored")
	}
}
