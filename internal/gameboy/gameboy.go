// Package gameboy assembles the components of the Game Boy into a
// machine that can be stepped cycle by cycle.
package gameboy

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"

	"github.com/thelolagemann/gomeboy-core/internal/boot"
	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	gbio "github.com/thelolagemann/gomeboy-core/internal/io"
	"github.com/thelolagemann/gomeboy-core/internal/joypad"
	"github.com/thelolagemann/gomeboy-core/internal/ram"
	"github.com/thelolagemann/gomeboy-core/internal/scheduler"
	"github.com/thelolagemann/gomeboy-core/internal/serial"
	"github.com/thelolagemann/gomeboy-core/internal/timer"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// ErrNoCartridge is returned when the machine is created without a
// usable cartridge.
var ErrNoCartridge = errors.New("gameboy: no cartridge")

// GameBoy represents a Game Boy. It contains all the components of the
// Game Boy, and ticks them in lockstep through the scheduler.
//
// Every GameBoy is independent of any other, and may be driven from its
// own goroutine. A single GameBoy must not be used concurrently.
type GameBoy struct {
	CPU       *cpu.CPU
	Interrupt *interrupts.Service
	Timer     *timer.Controller
	Joypad    *joypad.State
	Serial    *serial.Controller
	Bus       *gbio.Bus

	log.Logger

	s      *scheduler.Scheduler
	header cartridge.Header
	cart   types.Component
	boot   *boot.ROM
	rams   []*ram.RAM
	extra  []peripheral

	// set by options before the machine is assembled
	model        types.Model
	bootROM      []byte
	noBios       bool
	skipChecksum bool
	serialOut    io.Writer
	state        []byte
}

type peripheral struct {
	component types.Component
	clocked   types.Clocked
}

// NewGameBoy returns a new GameBoy running rom. Unless a boot ROM is
// provided with WithBootROM, the machine starts at 0x0100 with the
// registers left behind by the boot ROM of the selected model.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	if len(rom) == 0 {
		return nil, ErrNoCartridge
	}

	g := &GameBoy{
		Logger: log.NewNullLogger(),
		model:  types.DMGABC,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.loadCartridge(rom); err != nil {
		return nil, err
	}
	if err := g.assemble(); err != nil {
		return nil, err
	}

	if g.boot != nil {
		g.Infof("booting %s with %s boot rom", g.header.Title, g.boot.Name())
	} else {
		g.skipBoot()
	}

	if g.state != nil {
		if err := g.Restore(g.state); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// loadCartridge parses and validates the header of rom, and creates
// the cartridge unless one was supplied with WithCartridge.
func (g *GameBoy) loadCartridge(rom []byte) error {
	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoCartridge, err)
	}
	if err := header.Validate(len(rom), !g.skipChecksum); err != nil {
		return fmt.Errorf("%w: %w", ErrNoCartridge, err)
	}
	g.header = header

	if g.cart == nil {
		c, err := cartridge.NewCartridge(rom)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNoCartridge, err)
		}
		g.cart = c
		g.Infof("loaded cartridge %s (%016x)", header.String(), c.Hash())
	} else {
		g.Infof("loaded cartridge %s with external controller", header.String())
	}
	return nil
}

// assemble creates the components of the machine and attaches them to
// the bus in priority order.
func (g *GameBoy) assemble() error {
	g.s = scheduler.NewScheduler()
	g.Interrupt = interrupts.NewService()
	g.Timer = timer.NewController(g.Interrupt)
	g.Joypad = joypad.New(g.Interrupt)
	g.Serial = serial.NewController(g.Interrupt, g.s, g.Timer.SysClock)
	if g.serialOut != nil {
		g.Serial.SetOutput(g.serialOut)
	}

	vram := ram.NewRAM(types.VRAMStart, int(types.VRAMEnd-types.VRAMStart)+1)
	wram := ram.NewRAM(types.WRAMStart, int(types.WRAMEnd-types.WRAMStart)+1).
		WithMirror(types.EchoStart, types.EchoEnd)
	oam := ram.NewRAM(types.OAMStart, int(types.OAMEnd-types.OAMStart)+1)
	hram := ram.NewRAM(types.HRAMStart, int(types.HRAMEnd-types.HRAMStart)+1)
	g.rams = []*ram.RAM{vram, wram, oam, hram}

	components := []types.Component{g.Interrupt, g.Timer, g.Joypad, g.Serial}
	if g.bootROM != nil && !g.noBios {
		b, err := boot.LoadBootROM(g.bootROM)
		if err != nil {
			return err
		}
		g.boot = b
		components = append(components, b)
	}
	components = append(components, wram, hram, vram, oam,
		ram.NewFixed(types.UnusableStart, types.UnusableEnd, 0x00))
	for _, p := range g.extra {
		if p.component != nil {
			components = append(components, p.component)
		}
	}
	components = append(components, g.cart)

	bus, err := gbio.NewBus(components...)
	if err != nil {
		return err
	}
	g.Bus = bus

	g.CPU = cpu.NewCPU(bus, g.Interrupt)
	g.CPU.OnStop(func() {
		g.Debugf("STOP at 0x%04X, divider reset", g.CPU.PC)
		g.Timer.ResetDivider()
	})

	g.s.Register(g.Timer, g.CPU)
	for _, p := range g.extra {
		if p.clocked != nil {
			g.s.Register(p.clocked)
		}
	}
	return nil
}

// skipBoot sets the machine to the state the boot ROM leaves it in.
func (g *GameBoy) skipBoot() {
	r, ok := types.ModelRegisters[g.model]
	if !ok {
		r = types.ModelRegisters[types.DMGABC]
	}
	g.CPU.SetRegisters(cpu.Snapshot{
		A: r[0], F: r[1], B: r[2], C: r[3], D: r[4], E: r[5], H: r[6], L: r[7],
		SP: 0xFFFE,
		PC: 0x0100,
	})
	g.Timer.SetSysClock(types.ModelDIV[g.model])
	g.Infof("skipped boot rom, starting %s as %s", g.header.Title, g.model)
}

// RunUntil advances the machine until cycle machine cycles have
// elapsed since power on. It stops at the first error raised by a
// component, such as cpu.ErrIllegalOpcode.
func (g *GameBoy) RunUntil(cycle uint64) error {
	if err := g.s.RunUntil(cycle); err != nil {
		if errors.Is(err, cpu.ErrIllegalOpcode) {
			g.Errorf("cpu locked at cycle %d: %v", g.s.Cycle(), err)
		}
		return err
	}
	return g.Serial.Err()
}

// RunFor advances the machine by cycles machine cycles.
func (g *GameBoy) RunFor(cycles uint64) error {
	return g.RunUntil(g.s.Cycle() + cycles)
}

// CyclesElapsed returns the number of machine cycles run since power on.
func (g *GameBoy) CyclesElapsed() uint64 {
	return g.s.Cycle()
}

// Registers returns a snapshot of the CPU registers.
func (g *GameBoy) Registers() cpu.Snapshot {
	return g.CPU.Registers()
}

// Press presses button on the joypad.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases button on the joypad.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// Peek reads address through the bus.
func (g *GameBoy) Peek(address int) (uint8, error) {
	return g.Bus.Peek(address)
}

// Poke writes value to address through the bus.
func (g *GameBoy) Poke(address, value int) error {
	return g.Bus.Poke(address, value)
}

// Title returns the title of the cartridge.
func (g *GameBoy) Title() string {
	return g.header.Title
}

// Header returns the header of the cartridge.
func (g *GameBoy) Header() cartridge.Header {
	return g.header
}

// staters returns every component with state, in the order they are
// saved and loaded.
func (g *GameBoy) staters() []types.Stater {
	staters := []types.Stater{g.s, g.CPU, g.Timer, g.Joypad, g.Serial}
	if g.boot != nil {
		staters = append(staters, g.boot)
	}
	for _, r := range g.rams {
		staters = append(staters, r)
	}
	if s, ok := g.cart.(types.Stater); ok {
		staters = append(staters, s)
	}
	for _, p := range g.extra {
		if s, ok := p.component.(types.Stater); ok {
			staters = append(staters, s)
		} else if s, ok := p.clocked.(types.Stater); ok {
			staters = append(staters, s)
		}
	}
	return staters
}

func (g *GameBoy) save() *types.State {
	st := types.NewState()
	for _, s := range g.staters() {
		s.Save(st)
	}
	return st
}

// StateHash returns the xxhash of the serialized state of the machine.
// Two machines with the same hash behave identically from then on.
func (g *GameBoy) StateHash() uint64 {
	return xxhash.Sum64(g.save().Bytes())
}

// Snapshot returns the brotli compressed state of the machine.
func (g *GameBoy) Snapshot() ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(g.save().Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Restore loads a state returned by Snapshot. The machine must have
// been created with the same cartridge and options. If the state cannot
// be loaded the machine is left as it was.
func (g *GameBoy) Restore(snapshot []byte) error {
	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(snapshot)))
	if err != nil {
		return fmt.Errorf("gameboy: decompressing state: %w", err)
	}

	previous := g.save().Bytes()
	if err := g.load(raw); err != nil {
		if rollback := g.load(previous); rollback != nil {
			return fmt.Errorf("gameboy: rolling back state: %w", rollback)
		}
		return fmt.Errorf("gameboy: loading state: %w", err)
	}
	g.Debugf("restored state at cycle %d", g.s.Cycle())
	return nil
}

func (g *GameBoy) load(raw []byte) error {
	st := types.StateFromBytes(raw)
	for _, s := range g.staters() {
		s.Load(st)
	}
	return st.Err()
}
