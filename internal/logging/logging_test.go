package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("New() with unknown level succeeded, want error")
	}
}

func TestNewCreatesDatedLogFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(Config{Level: "info", Path: dir, Format: "json"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Close()

	logger.Info("hello")

	want := filepath.Join(dir, "voicetask-"+time.Now().Format("2006-01-02")+".log")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected log file %s: %v", want, err)
	}
}

func TestWithComponent(t *testing.T) {
	logger, err := New(Config{Level: "debug", Format: "text"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sub := logger.WithComponent("store")
	if sub.component != "store" {
		t.Errorf("component = %q, want store", sub.component)
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "DEBUG"} {
		if _, err := parseLevel(level); err != nil {
			t.Errorf("parseLevel(%q) error = %v", level, err)
		}
	}
}
