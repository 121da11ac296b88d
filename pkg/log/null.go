package log

// nullLogger is a logger that does nothing.
type nullLogger struct{}

func (nullLogger) Fatal(...interface{}) {}

func (nullLogger) Infof(string, ...interface{}) {}

func (nullLogger) Errorf(string, ...interface{}) {}

func (nullLogger) Debugf(string, ...interface{}) {}

// NewNullLogger returns a logger that does nothing.
func NewNullLogger() Logger {
	return nullLogger{}
}
