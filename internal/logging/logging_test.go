package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_OffIsNop(t *testing.T) {
	for _, level := range []string{"off", "", " OFF "} {
		l, err := New(level, "")
		if err != nil {
			t.Fatalf("New(%q) error = %v", level, err)
		}
		if l.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("New(%q) logger is enabled, want no-op", level)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Fatal("New(loud) should return error")
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	// Given a debug logger pointed at a file
	path := filepath.Join(t.TempDir(), "cb.log")
	l, err := New("debug", path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// When an entry is logged and flushed
	l.Debug("snapshot saved")
	_ = l.Sync()

	// Then the file holds one JSON line with the named logger
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", line, err)
	}
	if entry["msg"] != "snapshot saved" {
		t.Errorf("msg = %v, want %q", entry["msg"], "snapshot saved")
	}
	if entry["logger"] != "contactbook" {
		t.Errorf("logger = %v, want %q", entry["logger"], "contactbook")
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cb.log")
	l, err := New("warn", path)
	if err != nil {
		t.Fatal(err)
	}

	l.Info("dropped")
	l.Warn("kept")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dropped") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("warn entry missing")
	}
}
