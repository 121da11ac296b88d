// Package log provides the logger used throughout the emulator. The
// Logger interface is satisfied by *logrus.Logger, and by the null
// logger used in tests.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
}

var _ Logger = (*logrus.Logger)(nil)

// New returns a logrus logger writing plain text to stderr at the
// info level.
func New() *logrus.Logger {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput returns a logrus logger writing plain text to w.
func NewWithOutput(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// NewWithLevel returns New set to the named level, such as "debug".
func NewWithLevel(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := New()
	l.SetLevel(lvl)
	return l, nil
}
