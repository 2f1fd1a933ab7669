package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no zenta config found (run 'zenta init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config is the zenta configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Storage   StorageConfig   `yaml:"storage"`
	Board     BoardConfig     `yaml:"board"`
	Pomodoro  PomodoroConfig  `yaml:"pomodoro"`
	Retention RetentionConfig `yaml:"retention"`
	Planner   PlannerConfig   `yaml:"planner"`
	Log       LogConfig       `yaml:"log"`
	// Output is the default output format: table, json or compact.
	Output string `yaml:"output,omitempty"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path,omitempty"` // relative paths resolve against the data directory
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	QuotaBytes    int    `yaml:"quota_bytes"`
}

// ColumnConfig seeds a board column.
type ColumnConfig struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
}

// BoardConfig holds kanban defaults.
type BoardConfig struct {
	Columns    []ColumnConfig `yaml:"columns"`
	DoneColumn string         `yaml:"done_column"`
}

// PomodoroConfig holds session lengths as duration strings.
type PomodoroConfig struct {
	Work       string `yaml:"work"`
	ShortBreak string `yaml:"short_break"`
	LongBreak  string `yaml:"long_break"`
	LongEvery  int    `yaml:"long_every"`
}

// RetentionConfig controls trash expiry.
type RetentionConfig struct {
	DeletedTasks  string `yaml:"deleted_tasks"`  // duration; "0" keeps trash forever
	PurgeSchedule string `yaml:"purge_schedule"` // cron spec used by 'zenta watch'
}

// PlannerConfig holds weekly planner settings.
type PlannerConfig struct {
	WeekStart string `yaml:"week_start"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version: CurrentVersion,
		Storage: StorageConfig{Backend: DefaultBackend, QuotaBytes: DefaultQuotaBytes},
		Board: BoardConfig{
			Columns:    append([]ColumnConfig{}, DefaultColumns...),
			DoneColumn: DefaultDoneColumn,
		},
		Pomodoro: PomodoroConfig{
			Work:       DefaultWork,
			ShortBreak: DefaultShortBreak,
			LongBreak:  DefaultLongBreak,
			LongEvery:  DefaultLongEvery,
		},
		Retention: RetentionConfig{DeletedTasks: DefaultRetention, PurgeSchedule: DefaultPurgeSchedule},
		Planner:   PlannerConfig{WeekStart: DefaultWeekStart},
		Log:       LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// StoragePath returns the file backend directory or the sqlite database path.
func (c *Config) StoragePath() string {
	p := c.Storage.Path
	if p == "" {
		if c.Storage.Backend == "sqlite" {
			p = DefaultSQLiteFile
		} else {
			p = DefaultDataDir
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("%w: storage.redis_addr is required for the redis backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalid, c.Storage.Backend)
	}
	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("%w: storage.quota_bytes must be >= 0", ErrInvalid)
	}
	if err := c.validateBoard(); err != nil {
		return err
	}
	if err := c.validatePomodoro(); err != nil {
		return err
	}
	if _, err := c.RetentionDuration(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(c.Retention.PurgeSchedule); err != nil {
		return fmt.Errorf("%w: retention.purge_schedule %q: %w", ErrInvalid, c.Retention.PurgeSchedule, err)
	}
	if _, ok := parseWeekday(c.Planner.WeekStart); !ok {
		return fmt.Errorf("%w: planner.week_start %q is not a weekday", ErrInvalid, c.Planner.WeekStart)
	}
	switch c.Output {
	case "", "table", "json", "compact":
	default:
		return fmt.Errorf("%w: output must be table, json or compact", ErrInvalid)
	}
	return nil
}

func (c *Config) validateBoard() error {
	if len(c.Board.Columns) < 1 {
		return fmt.Errorf("%w: at least 1 board column is required", ErrInvalid)
	}
	ids := make([]string, len(c.Board.Columns))
	for i, col := range c.Board.Columns {
		if col.ID == "" || strings.TrimSpace(col.Title) == "" {
			return fmt.Errorf("%w: board.columns[%d] needs an id and a title", ErrInvalid, i)
		}
		ids[i] = col.ID
	}
	if hasDuplicates(ids) {
		return fmt.Errorf("%w: board column ids contain duplicates", ErrInvalid)
	}
	if c.Board.DoneColumn == "" {
		return fmt.Errorf("%w: board.done_column is required", ErrInvalid)
	}
	return nil
}

func (c *Config) validatePomodoro() error {
	fields := []struct{ name, value string }{
		{"work", c.Pomodoro.Work},
		{"short_break", c.Pomodoro.ShortBreak},
		{"long_break", c.Pomodoro.LongBreak},
	}
	for _, f := range fields {
		d, err := time.ParseDuration(f.value)
		if err != nil {
			return fmt.Errorf("%w: pomodoro.%s %q: %w", ErrInvalid, f.name, f.value, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: pomodoro.%s must be positive", ErrInvalid, f.name)
		}
	}
	if c.Pomodoro.LongEvery < 1 {
		return fmt.Errorf("%w: pomodoro.long_every must be >= 1", ErrInvalid)
	}
	return nil
}

// RetentionDuration parses retention.deleted_tasks. An empty value selects the default.
func (c *Config) RetentionDuration() (time.Duration, error) {
	v := c.Retention.DeletedTasks
	if v == "" {
		v = DefaultRetention
	}
	if v == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: retention.deleted_tasks %q: %w", ErrInvalid, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: retention.deleted_tasks must be >= 0", ErrInvalid)
	}
	return d, nil
}

// PomodoroDurations returns the parsed session lengths. Call after Validate.
func (c *Config) PomodoroDurations() (work, shortBreak, longBreak time.Duration) {
	work, _ = time.ParseDuration(c.Pomodoro.Work)
	shortBreak, _ = time.ParseDuration(c.Pomodoro.ShortBreak)
	longBreak, _ = time.ParseDuration(c.Pomodoro.LongBreak)
	return work, shortBreak, longBreak
}

// WeekStart returns the configured first day of the week.
func (c *Config) WeekStart() time.Weekday {
	d, ok := parseWeekday(c.Planner.WeekStart)
	if !ok {
		return time.Monday
	}
	return d
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, true
		}
	}
	return time.Sunday, false
}

// Init writes a default config into dir, creating it if needed.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.AlreadyExists, "config already exists in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads, migrates and validates the config in dir. Environment
// overrides are applied before validation but never saved.
func Load(dir string) (*Config, error) {
	cfg, err := read(dir)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile is Load without environment overrides, for editing the file.
func LoadFile(dir string) (*Config, error) {
	cfg, err := read(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// read parses the config file in dir and migrates it, saving the result
// when the version changed.
func read(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(absDir, ConfigFileName)) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}
	return &cfg, nil
}

// LoadOrDefault is Load, except that a directory without a config yields
// the defaults (with environment overrides) instead of ErrNotFound.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if !errors.Is(err, ErrNotFound) {
		return cfg, err
	}
	absDir, absErr := filepath.Abs(dir)
	if absErr != nil {
		return nil, fmt.Errorf("resolving path: %w", absErr)
	}
	cfg = NewDefault()
	cfg.SetDir(absDir)
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindDir walks upward from startDir looking for a zenta directory
// containing config.yml, then falls back to the user config directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the zenta directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	userDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(userDir, DefaultDir), nil
}

func hasDuplicates(slice []string) bool {
	seen := make(map[string]bool, len(slice))
	for _, s := range slice {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
