package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("file", "jun-2025.pdf").Msg("processed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["message"] != "processed" {
		t.Errorf("message: got %q, want %q", entry["message"], "processed")
	}
	if entry["file"] != "jun-2025.pdf" {
		t.Errorf("file field: got %q, want %q", entry["file"], "jun-2025.pdf")
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected timestamp field")
	}
}
