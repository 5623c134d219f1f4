package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedLogger(level string, buf *bytes.Buffer) *AppLogger {
	l := NewLoggerWithWriter(level, buf).(*AppLogger)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestAppLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger("warn", &buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug and info to be filtered, got %q", out)
	}
	if strings.TrimSpace(out) != "[2026-01-02 03:04:05] WARN: shown k=v" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAppLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger("info", &buf)

	l.Error("upload failed", errors.New("boom"), "file", "a.pdf")

	if !strings.Contains(buf.String(), "ERROR: upload failed error=boom file=a.pdf") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestAppLogger_WithPrefixesFields(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger("debug", &buf)

	child := l.With("session_id", "abc")
	child.Debug("selected", "file", "a.pdf")
	l.Debug("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "DEBUG: selected session_id=abc file=a.pdf") {
		t.Fatalf("unexpected child line: %q", lines[0])
	}
	if strings.Contains(lines[1], "session_id") {
		t.Fatalf("parent logger must not inherit child fields: %q", lines[1])
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		" INFO ":  INFO,
		"warning": WARN,
		"error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
