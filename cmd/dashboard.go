package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"stats", "overview"},
	Short:   "Show totals across every list",
	Long: `Shows task counts per list, priority and category, the completion rate,
overdue tasks, pending estimated time and completed pomodoros.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	overview := s.ws.Overview(ctx, s.stats.Completed(ctx))
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, overview)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, overview)
	default:
		output.OverviewTable(os.Stdout, overview)
	}
	return nil
}
