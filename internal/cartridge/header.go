package cartridge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidHeader is returned when the cartridge header is missing or
// inconsistent with the ROM it describes.
var ErrInvalidHeader = errors.New("cartridge: invalid header")

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// Flag is the colour compatibility flag of the cartridge.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x01: 2 * 1024, // unofficial, found in some homebrew
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

// Type is the cartridge type, which identifies the memory bank
// controller and any other hardware on the cartridge.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x013F-0x0142 - ManufacturerCode of the game
	ManufacturerCode string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	// 0x0144-0x0145 - NewLicenseeCode of the game.
	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	CountryCode     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	romSizeCode, ramSizeCode uint8
	computedChecksum         uint8
}

// ParseHeader parses the header of the given ROM. It fails with
// ErrInvalidHeader if the ROM is too short to hold a header; the
// header is otherwise not validated.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < headerEnd {
		return Header{}, fmt.Errorf("%w: rom is %d bytes, header ends at 0x%04X", ErrInvalidHeader, len(rom), headerEnd)
	}
	header := rom[headerStart:headerEnd]
	h := Header{}

	// parse the mode of the cartridge and parse the header accordingly
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// parse the title
	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = cleanTitle(header[0x34:0x44])
	} else {
		h.Title = cleanTitle(header[0x34:0x43])
	}

	h.ManufacturerCode = string(header[0x3F:0x43])
	h.NewLicenseeCode = string(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])

	// the ROM size is calculated by 32kB x (1 << n)
	h.romSizeCode = header[0x48]
	if h.romSizeCode <= 8 {
		h.ROMSize = (32 * 1024) * (1 << h.romSizeCode)
	}
	h.ramSizeCode = header[0x49]
	h.RAMSize = ramMAP[h.ramSizeCode]

	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	h.computedChecksum = HeaderChecksum(rom)

	return h, nil
}

// HeaderChecksum computes the checksum of the header bytes 0x0134 -
// 0x014C, as verified by the boot ROM.
func HeaderChecksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[0x0134:0x014D] {
		x = x - b - 1
	}
	return x
}

// cleanTitle strips the padding from a title.
func cleanTitle(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

// Validate checks the header against the ROM it was parsed from, and
// reports every problem found. Each problem wraps ErrInvalidHeader.
func (h *Header) Validate(romLength int, checksum bool) error {
	var result *multierror.Error

	if h.romSizeCode > 8 {
		result = multierror.Append(result, fmt.Errorf("%w: unknown rom size 0x%02X", ErrInvalidHeader, h.romSizeCode))
	} else if uint(romLength) != h.ROMSize {
		result = multierror.Append(result, fmt.Errorf("%w: rom is %d bytes, header declares %d", ErrInvalidHeader, romLength, h.ROMSize))
	}
	if _, ok := ramMAP[h.ramSizeCode]; !ok {
		result = multierror.Append(result, fmt.Errorf("%w: unknown ram size 0x%02X", ErrInvalidHeader, h.ramSizeCode))
	}
	if _, ok := typeNames[h.CartridgeType]; !ok {
		result = multierror.Append(result, fmt.Errorf("%w: unknown cartridge type 0x%02X", ErrInvalidHeader, uint8(h.CartridgeType)))
	}
	if checksum && h.computedChecksum != h.HeaderChecksum {
		result = multierror.Append(result, fmt.Errorf("%w: header checksum is 0x%02X, computed 0x%02X", ErrInvalidHeader, h.HeaderChecksum, h.computedChecksum))
	}

	return result.ErrorOrNil()
}

func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
