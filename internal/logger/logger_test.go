package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

// The logger is global, so these cases run sequentially.
func TestInitWriterFormats(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info", "json")
	With("component", "kv").Info("wrote value", "key", "zenta-tasks")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected a JSON record, got %q: %v", buf.String(), err)
	}
	if rec["component"] != "kv" || rec["key"] != "zenta-tasks" {
		t.Errorf("Expected component and key attributes, got %v", rec)
	}

	buf.Reset()
	InitWriter(&buf, "warn", "text")
	Info("hidden")
	Warn("shown", "key", "task-lists")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info to be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=task-lists") {
		t.Errorf("Expected text record with key, got %q", out)
	}
}
