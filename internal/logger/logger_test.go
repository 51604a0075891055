package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN, false)
	l.Info("dropped %d", 1)
	l.Warn("kept %d", 2)
	l.Error("kept %d", 3)
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected info record to be filtered: %s", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "kept 2") {
		t.Fatalf("missing warn record: %s", out)
	}
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "logger_test.go") {
		t.Fatalf("missing error record or caller: %s", out)
	}
}

func TestDebugNeedsDebugMode(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DEBUG, false)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no debug output without debug mode")
	}
	l = New(&buf, DEBUG, true)
	l.EnableCaller(false)
	l.Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG] shown") {
		t.Fatalf("expected debug output: %s", buf.String())
	}
}

func TestGlobalFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "tapmorse.log")
	l, err := NewFileLogger(path, INFO, false)
	if err != nil {
		t.Fatalf("open logger: %v", err)
	}
	SetGlobal(l)
	t.Cleanup(func() {
		_ = Close()
		SetGlobal(nil)
	})
	Info("session saved id=%d", 7)
	Debug("not written")
	if IsDebugEnabled() {
		t.Fatalf("expected debug mode off")
	}
	if err := Close(); err != nil {
		t.Fatalf("close logger: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "session saved id=7") || strings.Contains(string(data), "not written") {
		t.Fatalf("unexpected log contents: %s", data)
	}
}
