package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/config"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify the configuration",
	Long: `View the full configuration, get a specific key, or set a writable value.
Values shown include ZENTA_* environment overrides; set writes the file only.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func stringAccessor(field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get:      func(c *config.Config) any { return *field(c) },
		set:      func(c *config.Config, v string) error { *field(c) = v; return nil },
		writable: true,
	}
}

// durationAccessor checks the value parses; Validate enforces the range.
func durationAccessor(name string, field func(*config.Config) *string) configAccessor {
	acc := stringAccessor(field)
	acc.set = func(c *config.Config, v string) error {
		if _, err := time.ParseDuration(v); err != nil && v != "0" {
			return clierr.Newf(clierr.InvalidInput, "invalid %s %q: %v", name, v, err)
		}
		*field(c) = v
		return nil
	}
	return acc
}

func intAccessor(name string, field func(*config.Config) *int) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be an integer", name, v)
			}
			*field(c) = n
			return nil
		},
		writable: true,
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"dir": {
			get: func(c *config.Config) any { return c.Dir() },
		},
		"storage.backend":        stringAccessor(func(c *config.Config) *string { return &c.Storage.Backend }),
		"storage.path":           stringAccessor(func(c *config.Config) *string { return &c.Storage.Path }),
		"storage.redis_addr":     stringAccessor(func(c *config.Config) *string { return &c.Storage.RedisAddr }),
		"storage.redis_password": stringAccessor(func(c *config.Config) *string { return &c.Storage.RedisPassword }),
		"storage.redis_db":       intAccessor("storage.redis_db", func(c *config.Config) *int { return &c.Storage.RedisDB }),
		"storage.quota_bytes":    intAccessor("storage.quota_bytes", func(c *config.Config) *int { return &c.Storage.QuotaBytes }),
		"board.columns": {
			get: func(c *config.Config) any { return c.Board.Columns },
		},
		"board.done_column": stringAccessor(func(c *config.Config) *string { return &c.Board.DoneColumn }),
		"pomodoro.work": durationAccessor("pomodoro.work",
			func(c *config.Config) *string { return &c.Pomodoro.Work }),
		"pomodoro.short_break": durationAccessor("pomodoro.short_break",
			func(c *config.Config) *string { return &c.Pomodoro.ShortBreak }),
		"pomodoro.long_break": durationAccessor("pomodoro.long_break",
			func(c *config.Config) *string { return &c.Pomodoro.LongBreak }),
		"pomodoro.long_every": intAccessor("pomodoro.long_every",
			func(c *config.Config) *int { return &c.Pomodoro.LongEvery }),
		"retention.deleted_tasks": durationAccessor("retention.deleted_tasks",
			func(c *config.Config) *string { return &c.Retention.DeletedTasks }),
		"retention.purge_schedule": stringAccessor(func(c *config.Config) *string { return &c.Retention.PurgeSchedule }),
		"planner.week_start":       stringAccessor(func(c *config.Config) *string { return &c.Planner.WeekStart }),
		"log.level":                stringAccessor(func(c *config.Config) *string { return &c.Log.Level }),
		"log.format":               stringAccessor(func(c *config.Config) *string { return &c.Log.Format }),
		"output":                   stringAccessor(func(c *config.Config) *string { return &c.Output }),
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"dir",
		"storage.backend",
		"storage.path",
		"storage.redis_addr",
		"storage.redis_password",
		"storage.redis_db",
		"storage.quota_bytes",
		"board.columns",
		"board.done_column",
		"pomodoro.work",
		"pomodoro.short_break",
		"pomodoro.long_break",
		"pomodoro.long_every",
		"retention.deleted_tasks",
		"retention.purge_schedule",
		"planner.week_start",
		"log.level",
		"log.format",
		"output",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = displayValue(key, accessors[key].get(cfg))
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := displayValue(key, accessors[key].get(cfg))
		fmt.Fprintf(os.Stdout, "%-26s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}
	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(dir)
	if errors.Is(err, config.ErrNotFound) {
		return clierr.New(clierr.InvalidInput, "no config file to edit; run 'zenta init' first")
	}
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func unknownConfigKey(key string) error {
	return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
		WithDetails(map[string]any{"key": key, "allowed": allConfigKeys()})
}

// displayValue masks secrets in listings; 'config get' prints them as-is.
func displayValue(key string, val any) any {
	if key == "storage.redis_password" && val != "" {
		return "********"
	}
	return val
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []config.ColumnConfig:
		parts := make([]string, len(v))
		for i, c := range v {
			parts[i] = c.ID + "=" + c.Title
		}
		return strings.Join(parts, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
