package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
)

func TestNewDefaultValidates(t *testing.T) {
	t.Parallel()
	cfg := NewDefault()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
	if cfg.WeekStart() != time.Monday {
		t.Errorf("Expected monday week start, got %v", cfg.WeekStart())
	}
	work, short, long := cfg.PomodoroDurations()
	if work != 25*time.Minute || short != 5*time.Minute || long != 15*time.Minute {
		t.Errorf("Expected 25m/5m/15m, got %v/%v/%v", work, short, long)
	}
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "s3" }},
		{"redis without addr", func(c *Config) { c.Storage.Backend = "redis" }},
		{"no columns", func(c *Config) { c.Board.Columns = nil }},
		{"duplicate columns", func(c *Config) {
			c.Board.Columns = []ColumnConfig{{ID: "a", Title: "A"}, {ID: "a", Title: "B"}}
		}},
		{"bad work duration", func(c *Config) { c.Pomodoro.Work = "soon" }},
		{"zero long every", func(c *Config) { c.Pomodoro.LongEvery = 0 }},
		{"negative retention", func(c *Config) { c.Retention.DeletedTasks = "-1h" }},
		{"bad cron", func(c *Config) { c.Retention.PurgeSchedule = "every minute" }},
		{"bad weekday", func(c *Config) { c.Planner.WeekStart = "someday" }},
		{"bad output", func(c *Config) { c.Output = "xml" }},
		{"old version", func(c *Config) { c.Version = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefault()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRetentionZeroKeepsForever(t *testing.T) {
	t.Parallel()
	cfg := NewDefault()
	cfg.Retention.DeletedTasks = "0"
	d, err := cfg.RetentionDuration()
	if err != nil || d != 0 {
		t.Errorf("Expected 0 retention, got %v (%v)", d, err)
	}
}

func TestInitAndLoad(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "zenta")

	cfg, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := os.Stat(cfg.ConfigPath()); err != nil {
		t.Fatalf("Expected config file, got %v", err)
	}
	if _, err := Init(dir); !clierr.HasCode(err, clierr.AlreadyExists) {
		t.Errorf("Expected ALREADY_EXISTS on second init, got %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Board.DoneColumn != DefaultDoneColumn {
		t.Errorf("Expected done column %q, got %q", DefaultDoneColumn, loaded.Board.DoneColumn)
	}
	if loaded.StoragePath() != filepath.Join(loaded.Dir(), DefaultDataDir) {
		t.Errorf("Expected data dir under config dir, got %s", loaded.StoragePath())
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if _, err := Load(dir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	cfg, err := LoadOrDefault(dir)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Expected version %d, got %d", CurrentVersion, cfg.Version)
	}
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); !os.IsNotExist(err) {
		t.Error("Expected LoadOrDefault not to write a config file")
	}
}

func TestLoadMigratesV1(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	v1 := `version: 1
storage:
  backend: file
  quota_bytes: 1024
board:
  columns:
    - id: todo
      title: Todo
    - id: done
      title: Done
  done_column: Done
pomodoro:
  work: 50m
  short_break: 10m
  long_break: 30m
  long_every: 2
log:
  level: info
  format: text
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Expected version %d, got %d", CurrentVersion, cfg.Version)
	}
	if cfg.Retention.DeletedTasks != DefaultRetention || cfg.Planner.WeekStart != DefaultWeekStart {
		t.Errorf("Expected migrated defaults, got %+v %+v", cfg.Retention, cfg.Planner)
	}
	if cfg.Pomodoro.Work != "50m" {
		t.Errorf("Expected existing values kept, got %q", cfg.Pomodoro.Work)
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version: 3") {
		t.Errorf("Expected migrated config saved back, got:\n%s", data)
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 99\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvStorage, "redis")
	t.Setenv(EnvRedisAddr, "localhost:6379")
	t.Setenv(EnvRedisDB, "2")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvOutput, "json")

	cfg := NewDefault()
	ApplyEnv(cfg)
	if cfg.Storage.Backend != "redis" || cfg.Storage.RedisAddr != "localhost:6379" || cfg.Storage.RedisDB != 2 {
		t.Errorf("Expected redis storage from env, got %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" || cfg.Output != "json" {
		t.Errorf("Expected env log level and output, got %q %q", cfg.Log.Level, cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestFindDirWalksUp(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	if _, err := Init(filepath.Join(root, DefaultDir)); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	got, err := FindDir(nested)
	if err != nil {
		t.Fatalf("FindDir: %v", err)
	}
	want := filepath.Join(root, DefaultDir)
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected Load to apply env, got level %q", cfg.Log.Level)
	}

	cfg, err = LoadFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Expected LoadFile to keep file level %q, got %q", DefaultLogLevel, cfg.Log.Level)
	}
}
