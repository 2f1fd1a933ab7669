package cmd

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/date"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create"},
	Short:   "Create a new task",
	Long: `Creates a task on the current list (or --list). The task lands in the first
column of the list's board, in the done column when created with --done, or
in --column.

Title can be provided as a positional argument or via --title flag.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit ID[,ID,...]",
	Short: "Edit a task",
	Long: `Modifies fields of an existing task. Only specified fields are changed.
IDs may be abbreviated to any unambiguous prefix. Multiple IDs can be provided
as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskEdit,
}

func init() {
	normalize := func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "body", "desc":
			name = "description"
		case "cat":
			name = "category"
		}
		return pflag.NormalizedName(name)
	}

	taskAddCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	taskAddCmd.Flags().StringP("priority", "p", "", "priority (low, medium, high; default medium)")
	taskAddCmd.Flags().StringP("category", "c", "", "category (p, b, g)")
	taskAddCmd.Flags().IntP("estimate", "e", 0, "estimated time in minutes")
	taskAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringP("list", "l", "", "list id (default: current list)")
	taskAddCmd.Flags().Bool("no-list", false, "create the task without a list")
	taskAddCmd.Flags().String("description", "", "task description (markdown)")
	taskAddCmd.Flags().Bool("done", false, "create the task already completed")
	taskAddCmd.Flags().String("column", "", "board column to add the task to (ID or title)")
	taskAddCmd.Flags().SetNormalizeFunc(normalize)

	taskEditCmd.Flags().String("title", "", "new title")
	taskEditCmd.Flags().StringP("priority", "p", "", "new priority")
	taskEditCmd.Flags().StringP("category", "c", "", "new category (p, b, g)")
	taskEditCmd.Flags().Bool("clear-category", false, "clear the category")
	taskEditCmd.Flags().IntP("estimate", "e", 0, "new estimated time in minutes")
	taskEditCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
	taskEditCmd.Flags().Bool("clear-due", false, "clear due date")
	taskEditCmd.Flags().StringP("list", "l", "", "move the task to another list")
	taskEditCmd.Flags().String("description", "", "new description (replaces the old one)")
	taskEditCmd.Flags().StringP("append-description", "a", "", "append text to the description")
	taskEditCmd.Flags().SetNormalizeFunc(normalize)

	taskCmd.AddCommand(taskAddCmd, taskEditCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	title, err := resolveTitle(cmd, args)
	if err != nil {
		return err
	}

	t := task.Task{Title: title, Priority: task.PriorityMedium}
	if noList, _ := cmd.Flags().GetBool("no-list"); !noList {
		t.ListID = s.ws.CurrentList(ctx).ID
	}
	if _, err := applyTaskFlags(cmd, &t); err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("list"); v != "" {
		l, err := resolveList(ctx, s, v)
		if err != nil {
			return err
		}
		t.ListID = l.ID
	}
	if done, _ := cmd.Flags().GetBool("done"); done {
		t.Completed = true
	}
	column, _ := cmd.Flags().GetString("column")
	if column != "" && t.Completed {
		return clierr.New(clierr.InvalidInput, "--done and --column cannot be combined")
	}

	saved, err := s.ws.AddTask(ctx, t, column)
	if err != nil {
		return err
	}
	logActivity(s.cfg, "create", saved.ID, saved.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, saved)
	}
	output.Messagef(os.Stdout, "Created task %s: %s", output.ShortID(saved.ID), saved.Title)
	output.Messagef(os.Stdout, "  Priority: %s | List: %s", saved.Priority, listLabel(s.listTitles(ctx), saved.ListID))
	return nil
}

// resolveTitle returns the task title from either the positional arg or --title flag.
func resolveTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", errors.New("title is required: provide it as an argument or with --title")
	}
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	ids, err := board.ParseIDs(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	edit := func(ctx context.Context, id string) (task.Task, error) {
		t, err := s.ws.Tasks.Resolve(ctx, id)
		if err != nil {
			return task.Task{}, err
		}
		changed, err := applyTaskFlags(cmd, &t)
		if err != nil {
			return task.Task{}, err
		}
		if v, _ := cmd.Flags().GetString("list"); v != "" {
			l, err := resolveList(ctx, s, v)
			if err != nil {
				return task.Task{}, err
			}
			if l.ID != t.ListID {
				t.ListID = l.ID
				changed = true
			}
		}
		if !changed {
			return task.Task{}, clierr.New(clierr.NoChanges, "no changes specified")
		}
		saved, err := s.ws.SaveTask(ctx, t)
		if err != nil {
			return task.Task{}, err
		}
		logActivity(s.cfg, "edit", saved.ID, saved.Title)
		return saved, nil
	}

	if len(ids) > 1 {
		return runBatch(ctx, ids, func(ctx context.Context, id string) error {
			_, err := edit(ctx, id)
			return err
		})
	}

	t, err := edit(ctx, ids[0])
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Updated task %s: %s", output.ShortID(t.ID), t.Title)
	return nil
}

// applyTaskFlags copies the field flags shared by add and edit onto t and
// reports whether any of them was given.
func applyTaskFlags(cmd *cobra.Command, t *task.Task) (bool, error) {
	changed := false
	flags := cmd.Flags()

	if flags.Changed("title") && cmd.Name() == "edit" {
		v, _ := flags.GetString("title")
		t.Title = v
		changed = true
	}
	if v, _ := flags.GetString("priority"); v != "" {
		p := task.Priority(strings.ToLower(v))
		if err := task.ValidatePriority(p); err != nil {
			return false, err
		}
		t.Priority = p
		changed = true
	}
	if v, _ := flags.GetString("category"); v != "" {
		c := task.Category(strings.ToLower(v))
		if err := task.ValidateCategory(c); err != nil {
			return false, err
		}
		t.Category = c
		changed = true
	}
	if flags.Lookup("clear-category") != nil {
		if v, _ := flags.GetBool("clear-category"); v {
			t.Category = task.CategoryNone
			changed = true
		}
	}
	if flags.Changed("estimate") {
		v, _ := flags.GetInt("estimate")
		if err := task.ValidateEstimate(v); err != nil {
			return false, err
		}
		t.EstimatedTime = v
		changed = true
	}
	if v, _ := flags.GetString("due"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return false, task.ValidateDate("due", v, err)
		}
		t.DueDate = &d
		changed = true
	}
	if flags.Lookup("clear-due") != nil {
		if v, _ := flags.GetBool("clear-due"); v {
			t.DueDate = nil
			changed = true
		}
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		t.Description = v
		changed = true
	}
	if flags.Lookup("append-description") != nil && flags.Changed("append-description") {
		v, _ := flags.GetString("append-description")
		if t.Description != "" {
			t.Description += "\n\n"
		}
		t.Description += v
		changed = true
	}
	return changed, nil
}

func listLabel(titles map[string]string, id string) string {
	if id == "" {
		return "(none)"
	}
	if t, ok := titles[id]; ok {
		return t
	}
	return id + " (missing)"
}
