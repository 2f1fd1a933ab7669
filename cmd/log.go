package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
)

const defaultLogLimit = 20

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent changes",
	Long:  `Prints the activity log: task and list mutations made through zenta, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", defaultLogLimit, "show the last N entries (0 for all)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return clierr.New(clierr.InvalidInput, "--limit must be >= 0")
	}
	entries, err := board.ReadLog(cfg.Dir(), limit)
	if err != nil {
		return err
	}
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.LogCompact(os.Stdout, entries)
	default:
		output.LogTable(os.Stdout, entries)
	}
	return nil
}
