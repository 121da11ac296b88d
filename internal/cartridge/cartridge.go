// Package cartridge provides the cartridge of the Game Boy, which holds
// the game ROM and any external RAM.
//
// Only cartridges without a memory bank controller are emulated; a host
// that needs one supplies its own component to the machine.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// ErrUnsupportedCartridge is returned for cartridge types that require
// a memory bank controller.
var ErrUnsupportedCartridge = errors.New("cartridge: unsupported cartridge type")

// Cartridge represents a basic game cartridge, with up to 32kB of ROM
// mapped at 0x0000 - 0x7FFF, and optionally up to 8kB of RAM mapped at
// 0xA000 - 0xBFFF.
type Cartridge struct {
	rom    []byte
	ram    []byte
	header Header
	hash   uint64
}

// Supported returns true if the cartridge type can be emulated
// without a memory bank controller.
func Supported(t Type) bool {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return true
	}
	return false
}

// NewCartridge parses the header of rom and returns the cartridge it
// describes. The header is not validated, see Header.Validate.
func NewCartridge(rom []byte) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	if !Supported(header.CartridgeType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCartridge, header.CartridgeType)
	}

	c := &Cartridge{
		rom:    make([]byte, len(rom)),
		header: header,
		hash:   xxhash.Sum64(rom),
	}
	copy(c.rom, rom)

	if header.CartridgeType != ROM && header.RAMSize > 0 {
		size := header.RAMSize
		if size > uint(types.ExternalRAMEnd-types.ExternalRAMStart)+1 {
			size = uint(types.ExternalRAMEnd-types.ExternalRAMStart) + 1
		}
		c.ram = make([]byte, size)
	}

	return c, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the title of the cartridge.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Hash returns the xxhash of the ROM, identifying the cartridge.
func (c *Cartridge) Hash() uint64 {
	return c.hash
}

// Read implements types.Component. ROM beyond the end of the image,
// and RAM beyond the declared size, read back 0xFF.
func (c *Cartridge) Read(address uint16) (uint8, bool) {
	switch {
	case address <= types.ROMEnd:
		if int(address) < len(c.rom) {
			return c.rom[address], true
		}
		return 0xFF, true
	case types.InRange(address, types.ExternalRAMStart, types.ExternalRAMEnd):
		if i := int(address - types.ExternalRAMStart); i < len(c.ram) {
			return c.ram[i], true
		}
		return 0xFF, true
	}
	return 0, false
}

// Write implements types.Component. Writes to ROM are ignored.
func (c *Cartridge) Write(address uint16, value uint8) {
	if types.InRange(address, types.ExternalRAMStart, types.ExternalRAMEnd) {
		if i := int(address - types.ExternalRAMStart); i < len(c.ram) {
			c.ram[i] = value
		}
	}
}

var _ types.Stater = (*Cartridge)(nil)

// Load loads the external RAM.
func (c *Cartridge) Load(s *types.State) {
	s.ReadData(c.ram)
}

// Save saves the external RAM.
func (c *Cartridge) Save(s *types.State) {
	s.WriteData(c.ram)
}
