package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewSubLogger(t *testing.T) {
	_, err := NewSubLogger("")
	if !errors.Is(err, ErrEmptySubLoggerName) {
		t.Errorf("received: %v, expected: %v", err, ErrEmptySubLoggerName)
	}
	sl, err := NewSubLogger("flarp")
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if sl.name != "FLARP" {
		t.Errorf("received: %v, expected: %v", sl.name, "FLARP")
	}
	_, err = NewSubLogger("FLARP")
	if !errors.Is(err, ErrSubLoggerAlreadyRegistered) {
		t.Errorf("received: %v, expected: %v", err, ErrSubLoggerAlreadyRegistered)
	}
}

func TestLevels(t *testing.T) {
	sl, err := NewSubLogger("LEVELS")
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	var buf bytes.Buffer
	sl.SetOutput(&buf)

	// debug is off by default
	Debugf(sl, "hidden %v", 1)
	if buf.Len() != 0 {
		t.Errorf("received: %v, expected no output", buf.String())
	}
	Infof(sl, "shown %v", 2)
	if !strings.Contains(buf.String(), "INFO | LEVELS | shown 2") {
		t.Errorf("received: %v, expected info line", buf.String())
	}

	buf.Reset()
	sl.SetLevels(Levels{Debug: true})
	Debug(sl, "now visible")
	Warn(sl, "now hidden")
	out := buf.String()
	if !strings.Contains(out, "DEBUG | LEVELS | now visible") {
		t.Errorf("received: %v, expected debug line", out)
	}
	if strings.Contains(out, "now hidden") {
		t.Errorf("received: %v, expected warn suppressed", out)
	}
}

func TestNilSubLogger(t *testing.T) {
	// logging through a nil handle must not panic
	Info(nil, "nothing")
	Warnf(nil, "nothing %v", 1)
	Error(nil, "nothing")
}

func TestErrorf(t *testing.T) {
	sl, err := NewSubLogger("ERRS")
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	var buf bytes.Buffer
	sl.SetOutput(&buf)
	Errorf(sl, "boom %v", 9)
	if !strings.Contains(buf.String(), "ERROR | ERRS | boom 9") {
		t.Errorf("received: %v, expected error line", buf.String())
	}
}
