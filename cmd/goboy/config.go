package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

var (
	errNoROM        = errors.New("no rom given")
	errUnknownModel = errors.New("unknown model")
)

// models are the names accepted for the model setting.
var models = []types.Model{types.DMG0, types.DMGABC, types.MGB, types.SGB, types.SGB2}

// parseModel returns the model named s.
func parseModel(s string) (types.Model, error) {
	m := types.StringToModel(s)
	if m != types.Unset {
		return m, nil
	}
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = strings.ToLower(m.String())
	}
	return types.Unset, fmt.Errorf("%w %q, expected one of %s", errUnknownModel, s, strings.Join(names, ", "))
}

// Config is the configuration of a headless run. It is read from a
// YAML file, and then overridden by any flag set on the command line.
type Config struct {
	ROM          string `yaml:"rom"`
	Boot         string `yaml:"boot"`
	Cycles       uint64 `yaml:"cycles"`
	LogLevel     string `yaml:"log_level"`
	Serial       string `yaml:"serial"` // file to copy serial output to, - for stdout
	Model        string `yaml:"model"`
	State        string `yaml:"state"`
	SkipChecksum bool   `yaml:"skip_checksum"`
}

// defaultConfig runs for one second of emulated time.
func defaultConfig() Config {
	return Config{
		Cycles:   1 << 20,
		LogLevel: "info",
		Model:    "dmg",
	}
}

// load reads the YAML file at path over c.
func (c *Config) load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("%s for %d cycles", c.ROM, c.Cycles)
}

// parseFlags parses args, loading the file named by -config first so
// that explicitly set flags take precedence over it. The rom may also
// be given as the first argument.
func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("goboy", flag.ContinueOnError)
	configFile := fs.String("config", "", "YAML configuration file")
	rom := fs.String("rom", "", "The rom file to load")
	boot := fs.String("boot", "", "The boot rom file to load")
	cycles := fs.Uint64("cycles", 0, "The number of machine cycles to run")
	logLevel := fs.String("log", "", "The log level (debug, info, error)")
	serial := fs.String("serial", "", "Copy serial output to this file, - for stdout")
	model := fs.String("model", "", "The model to emulate when skipping the boot rom (dmg0, dmg, mgb, sgb, sgb2)")
	state := fs.String("state", "", "The snapshot to restore")
	skipChecksum := fs.Bool("skip-checksum", false, "Load roms with a bad header checksum")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	c := defaultConfig()
	if *configFile != "" {
		if err := c.load(*configFile); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			c.ROM = *rom
		case "boot":
			c.Boot = *boot
		case "cycles":
			c.Cycles = *cycles
		case "log":
			c.LogLevel = *logLevel
		case "serial":
			c.Serial = *serial
		case "model":
			c.Model = *model
		case "state":
			c.State = *state
		case "skip-checksum":
			c.SkipChecksum = *skipChecksum
		}
	})
	if c.ROM == "" && fs.NArg() > 0 {
		c.ROM = fs.Arg(0)
	}
	if c.ROM == "" {
		return Config{}, errNoROM
	}
	if _, err := parseModel(c.Model); err != nil {
		return Config{}, err
	}
	return c, nil
}
