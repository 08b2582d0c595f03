package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := &Logger{
		level:   level,
		writers: []io.Writer{buf},
		prefix:  "test",
	}
	return l, buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(LevelWarn)

	l.Debug("debug %d", 1)
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("messages below warn must be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] [test] warn") {
		t.Errorf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR] [test] error") {
		t.Errorf("expected error line, got %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufferLogger(LevelError)
	l.SetLevel(LevelDebug)
	l.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("expected debug message after lowering level")
	}
}

func TestWithPrefix(t *testing.T) {
	l, buf := newBufferLogger(LevelInfo)
	l.WithPrefix("share").Info("pushing")
	if !strings.Contains(buf.String(), "[test:share]") {
		t.Errorf("expected nested prefix, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("unexpected level names")
	}
	if Level(42).String() != "UNKNOWN" {
		t.Error("out of range level must be UNKNOWN")
	}
}
