package gameboy

import (
	"io"

	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before it is assembled.
type Opt func(gb *GameBoy)

// NoBios starts the machine at 0x0100 with the post boot state, even
// if a boot ROM was provided.
func NoBios() Opt {
	return func(gb *GameBoy) {
		gb.noBios = true
	}
}

// WithBootROM sets the boot ROM for the emulator. The machine starts
// at 0x0000 with every register cleared, and the boot ROM mapped over
// the cartridge until it disables itself.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// AsModel selects the model whose post boot register state is used
// when the boot ROM is skipped.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithPeripheral attaches a component to the bus, after the internal
// memories and before the cartridge, and ticks clocked after the CPU.
// Either may be nil.
func WithPeripheral(component types.Component, clocked types.Clocked) Opt {
	return func(gb *GameBoy) {
		gb.extra = append(gb.extra, peripheral{component: component, clocked: clocked})
	}
}

// WithCartridge replaces the built-in cartridge with c, such as a
// cartridge with a memory bank controller. The ROM header is still
// parsed and validated.
func WithCartridge(c types.Component) Opt {
	return func(gb *GameBoy) {
		gb.cart = c
	}
}

// SerialOutput copies every byte sent over the serial port to w. Test
// ROMs use it to report their results.
func SerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = w
	}
}

// SkipChecksum loads cartridges with a bad header checksum.
func SkipChecksum() Opt {
	return func(gb *GameBoy) {
		gb.skipChecksum = true
	}
}

// WithState restores the machine from a snapshot once it is assembled.
func WithState(snapshot []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = snapshot
	}
}
