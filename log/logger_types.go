package log

import (
	"errors"
	"io"
	"os"
	"sync"
)

const (
	timestampFormat = "02/01/2006 15:04:05"
	spacer          = " | "
)

var (
	// ErrSubLoggerAlreadyRegistered occurs when a sublogger is registered twice
	ErrSubLoggerAlreadyRegistered = errors.New("sub logger already registered")
	// ErrEmptySubLoggerName occurs when a sublogger is created without a name
	ErrEmptySubLoggerName = errors.New("sub logger name is empty")

	subLoggers = map[string]*SubLogger{}

	// Global is the default sublogger for callers without their own
	Global *SubLogger

	// mu guards the sublogger registry and the shared output writer
	mu     = &sync.RWMutex{}
	output io.Writer = os.Stdout
)

// Levels holds the levels a sublogger will emit
type Levels struct {
	Info  bool
	Debug bool
	Warn  bool
	Error bool
}

// SubLogger is a per-subsystem logging handle
type SubLogger struct {
	name   string
	levels Levels
	output io.Writer
}
