package log

import (
	"fmt"
	"io"
	"strings"
	"time"
)

func init() {
	Global, _ = NewSubLogger("LOG")
}

// NewSubLogger registers a new sublogger with the default levels enabled.
// Names are uppercased; registering the same name twice is an error
func NewSubLogger(name string) (*SubLogger, error) {
	if name == "" {
		return nil, ErrEmptySubLoggerName
	}
	name = strings.ToUpper(name)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := subLoggers[name]; ok {
		return nil, fmt.Errorf("%w '%v'", ErrSubLoggerAlreadyRegistered, name)
	}
	sl := &SubLogger{
		name:   name,
		levels: Levels{Info: true, Warn: true, Error: true},
	}
	subLoggers[name] = sl
	return sl, nil
}

// SetLevels overrides the levels a sublogger will emit
func (sl *SubLogger) SetLevels(l Levels) {
	mu.Lock()
	sl.levels = l
	mu.Unlock()
}

// SetOutput redirects a sublogger to a specific writer, used in testing
func (sl *SubLogger) SetOutput(w io.Writer) {
	mu.Lock()
	sl.output = w
	mu.Unlock()
}

// SetGlobalOutput redirects every sublogger without its own writer
func SetGlobalOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

func (sl *SubLogger) stage(header, data string) {
	mu.RLock()
	defer mu.RUnlock()
	w := sl.output
	if w == nil {
		w = output
	}
	fmt.Fprintf(w, "%s%s%s%s%s%s%s\n",
		time.Now().Format(timestampFormat), spacer, header, spacer, sl.name, spacer, data)
}

// Info logs at info level
func Info(sl *SubLogger, data string) {
	if sl == nil || !sl.levels.Info {
		return
	}
	sl.stage("INFO", data)
}

// Infoln logs at info level with spaces between operands
func Infoln(sl *SubLogger, v ...interface{}) {
	if sl == nil || !sl.levels.Info {
		return
	}
	sl.stage("INFO", fmt.Sprintln(v...))
}

// Infof logs a formatted message at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.levels.Info {
		return
	}
	sl.stage("INFO", fmt.Sprintf(data, v...))
}

// Debug logs at debug level
func Debug(sl *SubLogger, data string) {
	if sl == nil || !sl.levels.Debug {
		return
	}
	sl.stage("DEBUG", data)
}

// Debugf logs a formatted message at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.levels.Debug {
		return
	}
	sl.stage("DEBUG", fmt.Sprintf(data, v...))
}

// Warn logs at warn level
func Warn(sl *SubLogger, data string) {
	if sl == nil || !sl.levels.Warn {
		return
	}
	sl.stage("WARN", data)
}

// Warnf logs a formatted message at warn level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.levels.Warn {
		return
	}
	sl.stage("WARN", fmt.Sprintf(data, v...))
}

// Error logs operands at error level
func Error(sl *SubLogger, v ...interface{}) {
	if sl == nil || !sl.levels.Error {
		return
	}
	sl.stage("ERROR", fmt.Sprint(v...))
}

// Errorf logs a formatted message at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	if sl == nil || !sl.levels.Error {
		return
	}
	sl.stage("ERROR", fmt.Sprintf(data, v...))
}
