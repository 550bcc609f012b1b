package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevelsAndFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	defer SetLevel(LevelInfo)

	Debug("hidden", "k", 1)
	Info("calendar loaded", "path", "/tmp/a b.ics", "events", 3)
	Error("save failed", errors.New("disk full"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, `[INFO] calendar loaded path="/tmp/a b.ics" events=3`) {
		t.Errorf("unexpected info line: %q", out)
	}
	if !strings.Contains(out, `[ERROR] save failed err="disk full"`) {
		t.Errorf("unexpected error line: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "": LevelInfo, " error ": LevelError}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}
