package cmd

import (
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/config"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

func TestFormatClock(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{90 * time.Second, "01:30"},
		{1500 * time.Millisecond, "00:02"},
		{0, "00:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.in); got != tt.want {
			t.Errorf("formatClock(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseSwitch(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]bool{"on": true, "off": false, "true": true, "0": false} {
		got, err := parseSwitch(in)
		if err != nil || got != want {
			t.Errorf("parseSwitch(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := parseSwitch("maybe"); !clierr.HasCode(err, clierr.InvalidInput) {
		t.Errorf("Expected INVALID_INPUT, got %v", err)
	}
}

func TestResolveTrashed(t *testing.T) {
	t.Parallel()
	trash := []task.Task{{ID: "abc123", Title: "a"}, {ID: "abd456", Title: "b"}}

	id, err := resolveTrashed(trash, "abc")
	if err != nil || id != "abc123" {
		t.Errorf("Expected abc123, got %q (%v)", id, err)
	}
	if _, err := resolveTrashed(trash, "ab"); !clierr.HasCode(err, clierr.InvalidTaskID) {
		t.Errorf("Expected INVALID_TASK_ID for ambiguous prefix, got %v", err)
	}
	if _, err := resolveTrashed(trash, "zz"); !clierr.HasCode(err, clierr.TaskNotFound) {
		t.Errorf("Expected TASK_NOT_FOUND, got %v", err)
	}
}

func TestConfigAccessorsCoverDisplayKeys(t *testing.T) {
	t.Parallel()
	accessors := configAccessors()
	if len(accessors) != len(allConfigKeys()) {
		t.Errorf("Expected %d accessors, got %d", len(allConfigKeys()), len(accessors))
	}
	cfg := config.NewDefault()
	for _, key := range allConfigKeys() {
		acc, ok := accessors[key]
		if !ok {
			t.Errorf("Expected accessor for %q", key)
			continue
		}
		_ = acc.get(cfg)
	}
}

func TestConfigSetValidates(t *testing.T) {
	t.Parallel()
	cfg := config.NewDefault()
	acc := configAccessors()["pomodoro.work"]
	if err := acc.set(cfg, "soon"); !clierr.HasCode(err, clierr.InvalidInput) {
		t.Errorf("Expected INVALID_INPUT for bad duration, got %v", err)
	}
	if err := acc.set(cfg, "50m"); err != nil {
		t.Fatal(err)
	}
	if cfg.Pomodoro.Work != "50m" {
		t.Errorf("Expected 50m, got %q", cfg.Pomodoro.Work)
	}
	if configAccessors()["version"].writable {
		t.Error("Expected version to be read-only")
	}
}

func TestColumnID(t *testing.T) {
	t.Parallel()
	if got := columnID("Em Progresso", 1); got != "em-progresso" {
		t.Errorf("Expected em-progresso, got %q", got)
	}
	if got := columnID("!!!", 2); got != "col-3" {
		t.Errorf("Expected col-3, got %q", got)
	}
}
