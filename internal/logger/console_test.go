package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, "warn")

	log.Tracef("trace message")
	log.Debugf("debug message")
	log.Infof("info message")
	log.Warnf("warn message")
	log.Errorf("error message")

	out := buf.String()
	if strings.Contains(out, "trace message") || strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn leaked: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn/error missing: %q", out)
	}
}

func TestDefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, "")

	log.Debugf("hidden")
	log.Infof("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message shown at default level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info message missing at default level")
	}
}

func TestTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, "info")
	log.Infof("hello %s", "village")

	matched, err := regexp.MatchString(`^\[\d{2}:\d{2}:\d{2}\] hello village\n$`, buf.String())
	if err != nil {
		t.Fatal(err)
	}
	if !matched {
		t.Errorf("unexpected log line: %q", buf.String())
	}
}

func TestNilWriter(t *testing.T) {
	log := NewConsole(nil, "info")
	// Must not panic.
	log.Infof("into the void")
}

func TestNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, "info")
	log.Successf("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("ANSI escape written to non-terminal: %q", buf.String())
	}
}
