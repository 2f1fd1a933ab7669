package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

var taskShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks of the current list. Use --all for every list, --list for
another one. Filters combine with AND.`,
	RunE: runTaskList,
}

func init() {
	f := taskListCmd.Flags()
	f.StringP("list", "l", "", "list id (default: current list)")
	f.Bool("all", false, "include tasks of every list")
	f.StringSliceP("priority", "p", nil, "filter by priority")
	f.StringSliceP("category", "c", nil, "filter by category")
	f.Bool("done", false, "only completed tasks")
	f.Bool("open", false, "only open tasks")
	f.Bool("overdue", false, "only open tasks past their due date")
	f.StringP("search", "s", "", "case-insensitive search in title and description")
	f.String("sort", "", "sort by "+strings.Join(board.ValidSortFields(), ", "))
	f.BoolP("reverse", "r", false, "reverse sort order")
	f.IntP("limit", "n", 0, "show at most N tasks")
	f.String("group-by", "", "summarize by "+strings.Join(board.ValidGroupByFields(), ", "))
	taskListCmd.MarkFlagsMutuallyExclusive("done", "open")
	taskListCmd.MarkFlagsMutuallyExclusive("all", "list")

	taskCmd.AddCommand(taskShowCmd, taskListCmd)
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.ws.Tasks.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t)
	default:
		output.TaskDetail(os.Stdout, t, listLabel(s.listTitles(ctx), t.ListID))
	}
	return nil
}

func runTaskList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	opts, err := listOptions(cmd)
	if err != nil {
		return err
	}
	if all, _ := cmd.Flags().GetBool("all"); !all {
		l, err := sessionList(cmd, s)
		if err != nil {
			return err
		}
		opts.Filter.ListID = l.ID
	}
	opts.Filter.Today = s.ws.Today()
	tasks := board.Select(s.ws.Tasks.LoadAll(ctx), opts)

	if groupBy, _ := cmd.Flags().GetString("group-by"); groupBy != "" {
		if err := board.ValidateGroupBy(groupBy); err != nil {
			return err
		}
		gs := board.GroupBy(tasks, groupBy, s.ws.AllLists(ctx))
		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, gs)
		case output.FormatCompact:
			output.GroupedCompact(os.Stdout, gs)
		default:
			output.GroupedTable(os.Stdout, gs)
		}
		return nil
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks, s.listTitles(ctx))
	}
	return nil
}

// listOptions builds filter and sort options from the list flags. The list
// scope is left to the caller.
func listOptions(cmd *cobra.Command) (board.ListOptions, error) {
	var opts board.ListOptions
	flags := cmd.Flags()

	priorities, _ := flags.GetStringSlice("priority")
	for _, v := range priorities {
		p := task.Priority(strings.ToLower(v))
		if err := task.ValidatePriority(p); err != nil {
			return opts, err
		}
		opts.Filter.Priorities = append(opts.Filter.Priorities, p)
	}
	categories, _ := flags.GetStringSlice("category")
	for _, v := range categories {
		c := task.Category(strings.ToLower(v))
		if err := task.ValidateCategory(c); err != nil {
			return opts, err
		}
		opts.Filter.Categories = append(opts.Filter.Categories, c)
	}

	if done, _ := flags.GetBool("done"); done {
		v := true
		opts.Filter.Completed = &v
	}
	if open, _ := flags.GetBool("open"); open {
		v := false
		opts.Filter.Completed = &v
	}
	opts.Filter.Overdue, _ = flags.GetBool("overdue")
	opts.Filter.Search, _ = flags.GetString("search")

	opts.SortBy, _ = flags.GetString("sort")
	if opts.SortBy != "" && !validSort(opts.SortBy) {
		return opts, clierr.Newf(clierr.InvalidInput, "invalid sort field %q", opts.SortBy).
			WithDetails(map[string]any{"field": opts.SortBy, "allowed": board.ValidSortFields()})
	}
	opts.Reverse, _ = flags.GetBool("reverse")
	opts.Limit, _ = flags.GetInt("limit")
	if opts.Limit < 0 {
		return opts, clierr.New(clierr.InvalidInput, "--limit must be >= 0")
	}
	return opts, nil
}

func validSort(field string) bool {
	for _, f := range board.ValidSortFields() {
		if f == field {
			return true
		}
	}
	return false
}
