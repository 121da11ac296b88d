package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf)
	l.Infof("loaded %s", "TETRIS")
	l.Debugf("hidden")

	out := buf.String()
	if !strings.Contains(out, "level=info msg=loaded TETRIS") {
		t.Errorf("expected plain text output, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug messages to be filtered, got %q", out)
	}
	if strings.Contains(out, "time=") {
		t.Errorf("expected no timestamp, got %q", out)
	}
}

func TestNewWithLevel(t *testing.T) {
	l, err := NewWithLevel("debug")
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsLevelEnabled(l.Level) || l.Level.String() != "debug" {
		t.Errorf("expected debug level, got %s", l.Level)
	}
	if _, err := NewWithLevel("loud"); err == nil {
		t.Errorf("expected an unknown level to fail")
	}
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("%d", 1)
	l.Errorf("%d", 2)
	l.Debugf("%d", 3)
	l.Fatal("does not exit")
}
