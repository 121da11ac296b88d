package bits

import (
	"errors"
	"testing"
)

func TestTestAndSet(t *testing.T) {
	var b uint8
	for i := uint(0); i < 8; i++ {
		b = Set(b, i)
		if !Test(b, i) {
			t.Errorf("expected bit %d to be set, got unset", i)
		}
		if Val(b, i) != 1 {
			t.Errorf("expected Val of bit %d to be 1, got %d", i, Val(b, i))
		}
	}
	if b != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02X", b)
	}
	for i := uint(0); i < 8; i++ {
		b = Reset(b, i)
		if Test(b, i) {
			t.Errorf("expected bit %d to be reset, got set", i)
		}
	}
	if SetTo(uint16(0), 15, true) != 0x8000 {
		t.Errorf("expected SetTo to set bit 15")
	}
}

func TestCheckedHelpers(t *testing.T) {
	if _, err := TestChecked(uint8(0), 8); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := SetChecked(uint16(0), 16, true); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	v, err := SetChecked(uint16(0), 9, true)
	if err != nil || v != 0x200 {
		t.Errorf("expected 0x200, got 0x%04X (%v)", v, err)
	}
	if _, err := Mask(64); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if m, _ := Mask(3); m != 8 {
		t.Errorf("expected mask 8, got %d", m)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		value         uint8
		start, length uint
		want          uint8
	}{
		{0b1011_0110, 0, 2, 0b10},
		{0b1011_0110, 4, 4, 0b1011},
		{0b1011_0110, 0, 8, 0b1011_0110},
		{0b1011_0110, 2, 3, 0b101},
	}
	for _, tt := range tests {
		got, err := Extract(tt.value, tt.start, tt.length)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Extract(%08b, %d, %d): expected %b, got %b", tt.value, tt.start, tt.length, tt.want, got)
		}
	}
	if _, err := Extract(uint8(0), 6, 3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := Extract(uint8(0), 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestClip(t *testing.T) {
	if v, _ := Clip(8, 0x1FF); v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%X", v)
	}
	if v, _ := Clip(64, ^uint64(0)); v != ^uint64(0) {
		t.Errorf("expected all bits, got 0x%X", v)
	}
	for _, w := range []uint{0, 65} {
		if _, err := Clip(w, 1); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("width %d: expected ErrOutOfRange, got %v", w, err)
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		width    uint
		value    uint64
		distance int
		want     uint64
	}{
		{8, 0x81, 1, 0x03},
		{8, 0x81, -1, 0xC0},
		{8, 0x12, 4, 0x21},
		{8, 0x12, 8, 0x12},
		{9, 0x100, 1, 0x001},
		{9, 0x001, -1, 0x100},
		{16, 0x8001, 17, 0x0003},
	}
	for _, tt := range tests {
		got, err := Rotate(tt.width, tt.value, tt.distance)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Rotate(%d, 0x%X, %d): expected 0x%X, got 0x%X", tt.width, tt.value, tt.distance, tt.want, got)
		}
	}

	// rotating by n then -n is the identity
	for v := uint64(0); v < 256; v++ {
		for d := -9; d <= 9; d++ {
			r, _ := Rotate(8, v, d)
			back, _ := Rotate(8, r, -d)
			if back != v {
				t.Fatalf("rotate 0x%02X by %d and back: got 0x%02X", v, d, back)
			}
		}
	}
}

func TestBytes(t *testing.T) {
	w := Make16(0x12, 0x34)
	if w != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", w)
	}
	if High(w) != 0x12 || Low(w) != 0x34 {
		t.Errorf("expected 0x12/0x34, got 0x%02X/0x%02X", High(w), Low(w))
	}
	if Complement8(0x0F) != 0xF0 {
		t.Errorf("expected 0xF0, got 0x%02X", Complement8(0x0F))
	}
}
