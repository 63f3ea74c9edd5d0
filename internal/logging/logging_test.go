package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.input, got, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatAuto, "json": FormatJSON, "Text": FormatText} {
		if got, err := ParseFormat(input); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo, FormatJSON)
	logger.Debug("hidden")
	logger.Info("validated", "violations", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1:\n%s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["msg"] != "validated" || entry["violations"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_AutoOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelDebug, FormatAuto).Debug("hello")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("a buffer is not a terminal, want JSON: %q", buf.String())
	}
	if IsTerminal(&buf) {
		t.Error("IsTerminal(buffer) = true")
	}
}
