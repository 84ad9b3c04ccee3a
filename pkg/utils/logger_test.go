package utils

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger_levels(t *testing.T) {
	dev, err := NewLogger(true)
	if err != nil {
		t.Fatalf("NewLogger(true): %v", err)
	}
	if !dev.Core().Enabled(zap.DebugLevel) {
		t.Error("debug logger should enable debug level")
	}

	prod, err := NewLogger(false)
	if err != nil {
		t.Fatalf("NewLogger(false): %v", err)
	}
	if prod.Core().Enabled(zap.DebugLevel) {
		t.Error("production logger should not enable debug level")
	}
	if !prod.Core().Enabled(zap.InfoLevel) {
		t.Error("production logger should enable info level")
	}
}

func TestLoggerOrNop(t *testing.T) {
	if LoggerOrNop(nil) == nil {
		t.Fatal("LoggerOrNop(nil) returned nil")
	}
	l := zap.NewExample()
	if LoggerOrNop(l) != l {
		t.Error("LoggerOrNop should return the given logger")
	}
}
