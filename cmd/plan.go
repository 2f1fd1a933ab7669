package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/date"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/planner"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"week"},
	Short:   "Show the weekly planner",
	Long: `Lays out tasks of every list by due date over one week. The week starts
on planner.week_start from the config. Tasks without a due date are listed
separately with --unscheduled.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("week", "", "any date in the week to show (YYYY-MM-DD, default: today)")
	planCmd.Flags().StringP("list", "l", "", "only tasks of this list")
	planCmd.Flags().BoolP("unscheduled", "u", false, "also list open tasks without a due date")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	day := s.ws.Today()
	if v, _ := cmd.Flags().GetString("week"); v != "" {
		if day, err = date.Parse(v); err != nil {
			return task.ValidateDate("week", v, err)
		}
	}

	tasks := s.ws.Tasks.LoadAll(ctx)
	if ref, _ := cmd.Flags().GetString("list"); ref != "" {
		l, err := resolveList(ctx, s, ref)
		if err != nil {
			return err
		}
		tasks = task.InList(tasks, l.ID)
	}

	days := planner.Week(tasks, day, s.cfg.WeekStart())
	var unscheduled []task.Task
	if v, _ := cmd.Flags().GetBool("unscheduled"); v {
		unscheduled = planner.Unscheduled(tasks)
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, map[string]any{"days": days, "unscheduled": unscheduled})
	case output.FormatCompact:
		output.WeekCompact(os.Stdout, days)
		if len(unscheduled) > 0 {
			output.Messagef(os.Stdout, "unscheduled:")
			output.TaskCompact(os.Stdout, unscheduled)
		}
	default:
		output.WeekTable(os.Stdout, days, unscheduled, s.ws.Today().String())
	}
	return nil
}
