package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithField("chat_id", 42).Info("update processed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["message"] != "update processed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["chat_id"] != float64(42) {
		t.Errorf("chat_id = %v", entry["chat_id"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("missing timestamp key")
	}
}

func TestLogger_WarnLevelRename(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Warn("something odd")

	if !strings.Contains(buf.String(), `"level":"warning"`) {
		t.Errorf("WARN should be renamed to warning, got: %s", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info log should be filtered at error level, got: %s", buf.String())
	}

	log.Error("kept")
	if buf.Len() == 0 {
		t.Error("error log should pass at error level")
	}
}

func TestLogger_WithHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.WithModule("relay").
		WithRequestID("req-1").
		WithFields(map[string]any{"kind": "photo"}).
		Debug("sent")

	out := buf.String()
	for _, want := range []string{`"module":"relay"`, `"request_id":"req-1"`, `"kind":"photo"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("verbose", &buf)

	log.Debug("dropped")
	if buf.Len() != 0 {
		t.Error("debug should be filtered at default info level")
	}
	log.Info("kept")
	if buf.Len() == 0 {
		t.Error("info should pass at default info level")
	}
}
