// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// Size is the size of a DMG/MGB/SGB boot ROM.
const Size = 256

// ErrInvalidLength is returned when loading a boot ROM that is not
// Size bytes long.
var ErrInvalidLength = errors.New("boot: invalid boot rom length")

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 -
// 0x00FF, over the cartridge.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// by writing a non-zero value to the types.BDIS register, and the
// cartridge becomes visible, thus starting the cartridge execution, and
// preventing the boot ROM from being executed again.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
	disabled bool
}

// LoadBootROM loads a boot ROM, and calculates its MD5 checksum.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, len(b))
	}

	// calculate checksum
	bootChecksum := md5.Sum(b)

	raw := make([]byte, Size)
	copy(raw, b)
	return &ROM{
		raw:      raw,
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Read implements types.Component. The boot ROM answers reads of
// 0x0000 - 0x00FF until it is disabled.
func (b *ROM) Read(address uint16) (uint8, bool) {
	if b.disabled || address > types.BootROMEnd {
		return 0, false
	}
	return b.raw[address], true
}

// Write implements types.Component. A non-zero write to types.BDIS
// unmaps the boot ROM until the next reset.
func (b *ROM) Write(address uint16, value uint8) {
	if address == types.BDIS && value != 0 {
		b.disabled = true
	}
}

// Enabled returns true if the boot ROM is mapped.
func (b *ROM) Enabled() bool {
	return !b.disabled
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (b *ROM) Model() types.Model {
	if b == nil {
		return types.Unset
	}
	return knownBootROMChecksums[b.checksum]
}

// Name returns a description of the boot rom.
func (b *ROM) Name() string {
	if b == nil {
		return "none"
	}
	if name, ok := bootROMNames[b.checksum]; ok {
		return name
	}
	return "unknown"
}

var _ types.Stater = (*ROM)(nil)

// Load loads whether the boot ROM is mapped.
func (b *ROM) Load(s *types.State) {
	b.disabled = s.ReadBool()
}

// Save saves whether the boot ROM is mapped.
func (b *ROM) Save(s *types.State) {
	s.WriteBool(b.disabled)
}

// knownBootROMChecksums is a map of known boot rom checksums,
// with the key being the checksum, and the value being the
// model of the boot rom.
var knownBootROMChecksums = map[string]types.Model{
	DMG0: types.DMG0,
	DMG:  types.DMGABC,
	MGB:  types.MGB,
	SGB:  types.SGB,
	SGB2: types.SGB2,
}

var bootROMNames = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the DMG early boot ROM,
	// a variant that was found in very early DMG units and
	// only ever sold in Japan. In the case of a boot failure,
	// it will flash the screen, rather than hanging after
	// the Nintendo logo.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG boot rom, which is
	// the most common boot ROM found in the original DMG-01
	// models.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM, which differs
	// only by a single byte from the DMG boot ROM, loading
	// the value 0xFF into the A register, rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the SGB boot ROM, which sends
	// the cartridge header to the SNES rather than showing
	// a logo animation.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is the checksum of the SGB2 boot ROM, which loads
	// 0xFF into the A register, rather than 0x01.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
