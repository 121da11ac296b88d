package main

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFlags(t *testing.T) {
	config := writeFile(t, "goboy.yaml", []byte(`
rom: from-file.gb
cycles: 500
log_level: debug
serial: "-"
`))

	t.Run("file", func(t *testing.T) {
		c, err := parseFlags([]string{"-config", config})
		if err != nil {
			t.Fatal(err)
		}
		want := Config{ROM: "from-file.gb", Cycles: 500, LogLevel: "debug", Serial: "-", Model: "dmg"}
		if c != want {
			t.Errorf("expected %+v, got %+v", want, c)
		}
	})
	t.Run("flags override file", func(t *testing.T) {
		c, err := parseFlags([]string{"-config", config, "-cycles", "10", "-rom", "flag.gb"})
		if err != nil {
			t.Fatal(err)
		}
		if c.Cycles != 10 || c.ROM != "flag.gb" || c.LogLevel != "debug" {
			t.Errorf("expected flags to override the file, got %+v", c)
		}
	})
	t.Run("positional rom", func(t *testing.T) {
		c, err := parseFlags([]string{"game.gb"})
		if err != nil {
			t.Fatal(err)
		}
		if c.ROM != "game.gb" || c.Cycles != 1<<20 || c.LogLevel != "info" {
			t.Errorf("expected defaults with game.gb, got %+v", c)
		}
	})
	t.Run("no rom", func(t *testing.T) {
		if _, err := parseFlags(nil); !errors.Is(err, errNoROM) {
			t.Errorf("expected errNoROM, got %v", err)
		}
	})
	t.Run("model", func(t *testing.T) {
		c, err := parseFlags([]string{"-model", "SGB2", "game.gb"})
		if err != nil || c.Model != "SGB2" {
			t.Errorf("expected model SGB2, got %q (%v)", c.Model, err)
		}
		_, err = parseFlags([]string{"-model", "cgb", "game.gb"})
		if !errors.Is(err, errUnknownModel) {
			t.Fatalf("expected errUnknownModel, got %v", err)
		}
		if !strings.Contains(err.Error(), "dmg0, dmg, mgb, sgb, sgb2") {
			t.Errorf("expected the valid models to be listed, got %q", err)
		}
		if _, err := parseFlags([]string{"-model", "unset", "game.gb"}); !errors.Is(err, errUnknownModel) {
			t.Errorf("expected unset to be rejected, got %v", err)
		}
	})
	t.Run("bad file", func(t *testing.T) {
		bad := writeFile(t, "bad.yaml", []byte("cycles: [1"))
		if _, err := parseFlags([]string{"-config", bad}); err == nil {
			t.Errorf("expected invalid yaml to fail")
		}
	})
}

func TestRun(t *testing.T) {
	rom := make([]byte, 32*1024)
	copy(rom[0x0100:], []byte{
		0x3E, 'K', // LD A, 'K'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x18, 0xFE, // JR -2
	})
	rom[0x014D] = cartridge.HeaderChecksum(rom)

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(rom)
	w.Close()

	cfg := defaultConfig()
	cfg.ROM = writeFile(t, "test.gb.gz", gz.Bytes())
	cfg.Cycles = 100
	cfg.Serial = "-"

	var out bytes.Buffer
	if err := run(cfg, log.NewNullLogger(), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "K\n") {
		t.Errorf("expected serial output first, got %q", out.String())
	}
	if !strings.Contains(out.String(), "PC: 0108") || !strings.Contains(out.String(), "cycles: 100") {
		t.Errorf("expected final registers, got %q", out.String())
	}

	cfg.ROM = writeFile(t, "missing.gb", nil)
	if err := run(cfg, log.NewNullLogger(), &out); err == nil {
		t.Errorf("expected an empty rom to fail")
	}
}
