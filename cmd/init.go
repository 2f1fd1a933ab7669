package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/config"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a zenta data directory",
	Long: `Creates the data directory with a default config.yml.
Without --dir the directory is ./zenta, which commands run below it will find.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("storage", "", "storage backend (file, sqlite, redis, memory)")
	initCmd.Flags().StringSlice("columns", nil, "comma-separated board column titles")
	initCmd.Flags().String("done-column", "", "title of the column that marks tasks done")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	cfg, err := config.Init(dir)
	if err != nil {
		return err
	}

	changed := false
	if v, _ := cmd.Flags().GetString("storage"); v != "" {
		cfg.Storage.Backend = v
		changed = true
	}
	if titles, _ := cmd.Flags().GetStringSlice("columns"); len(titles) > 0 {
		cols := make([]config.ColumnConfig, len(titles))
		for i, t := range titles {
			cols[i] = config.ColumnConfig{ID: columnID(t, i), Title: strings.TrimSpace(t)}
		}
		cfg.Board.Columns = cols
		cfg.Board.DoneColumn = cols[len(cols)-1].Title
		changed = true
	}
	if v, _ := cmd.Flags().GetString("done-column"); v != "" {
		cfg.Board.DoneColumn = v
		changed = true
	}
	if changed {
		if err := cfg.Validate(); err != nil {
			_ = os.Remove(cfg.ConfigPath())
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
	}

	titles := make([]string, len(cfg.Board.Columns))
	for i, c := range cfg.Board.Columns {
		titles[i] = c.Title
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":  "initialized",
			"dir":     cfg.Dir(),
			"config":  cfg.ConfigPath(),
			"storage": cfg.Storage.Backend,
			"data":    cfg.StoragePath(),
			"columns": strings.Join(titles, ","),
		})
	}

	output.Messagef(os.Stdout, "Initialized zenta in %s", cfg.Dir())
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Storage: %s (%s)", cfg.Storage.Backend, cfg.StoragePath())
	output.Messagef(os.Stdout, "  Columns: %s", strings.Join(titles, ", "))
	return nil
}

// columnID derives a column id from its title.
func columnID(title string, idx int) string {
	if id := task.GenerateSlug(title); id != "" {
		return id
	}
	return "col-" + strconv.Itoa(idx+1)
}
