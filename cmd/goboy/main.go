// Command goboy runs a ROM headlessly for a number of machine cycles,
// and prints the final register state of the CPU.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/gomeboy-core/internal/gameboy"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.New().Fatal(err)
	}

	logger, err := log.NewWithLevel(cfg.LogLevel)
	if err != nil {
		log.New().Fatal(err)
	}

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Fatal(err)
	}
}

// run loads the files named by cfg, runs the machine and writes the
// final registers to out.
func run(cfg Config, logger log.Logger, out io.Writer) error {
	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		return err
	}

	model, err := parseModel(cfg.Model)
	if err != nil {
		return err
	}
	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.AsModel(model),
	}
	if cfg.Boot != "" {
		boot, err := utils.LoadFile(cfg.Boot)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if cfg.State != "" {
		state, err := os.ReadFile(cfg.State)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithState(state))
	}
	if cfg.SkipChecksum {
		opts = append(opts, gameboy.SkipChecksum())
	}
	switch cfg.Serial {
	case "":
	case "-":
		opts = append(opts, gameboy.SerialOutput(out))
	default:
		f, err := os.Create(cfg.Serial)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, gameboy.SerialOutput(f))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}

	logger.Infof("running %s", cfg)
	runErr := gb.RunFor(cfg.Cycles)

	r := gb.Registers()
	fmt.Fprintf(out, "\n%s\n", r)
	fmt.Fprintf(out, "Z%s N%s H%s C%s cycles: %d\n",
		utils.BoolToString(r.F&0x80 > 0), utils.BoolToString(r.F&0x40 > 0),
		utils.BoolToString(r.F&0x20 > 0), utils.BoolToString(r.F&0x10 > 0),
		gb.CyclesElapsed())
	return runErr
}
