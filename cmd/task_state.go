package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

var taskDoneCmd = &cobra.Command{
	Use:   "done ID[,ID,...]",
	Short: "Mark tasks completed",
	Long: `Sets the completed flag. Only the flag changes: the task stays in its
board column. Use 'board move' to move it into the done column instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error { return runComplete(cmd, args[0], true) },
}

var taskUndoneCmd = &cobra.Command{
	Use:   "undone ID[,ID,...]",
	Short: "Mark tasks open again",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runComplete(cmd, args[0], false) },
}

var taskRmCmd = &cobra.Command{
	Use:     "rm ID[,ID,...]",
	Aliases: []string{"delete"},
	Short:   "Delete tasks",
	Long: `Moves tasks to the trash, from which 'task restore' brings them back.
With --hard the task is removed outright. Prompts for confirmation in
interactive mode; multiple IDs require --yes.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskRm,
}

var taskRestoreCmd = &cobra.Command{
	Use:   "restore ID",
	Short: "Restore a task from the trash",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRestore,
}

var taskTrashCmd = &cobra.Command{
	Use:   "trash",
	Short: "List trashed tasks",
	RunE:  runTaskTrash,
}

var taskPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop trashed tasks past the retention window",
	Long: `Removes tombstones older than retention.deleted_tasks. With --all the
whole trash is emptied (asks for confirmation unless --yes).`,
	RunE: runTaskPurge,
}

func init() {
	taskRmCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	taskRmCmd.Flags().Bool("hard", false, "remove permanently instead of moving to the trash")
	taskPurgeCmd.Flags().Bool("all", false, "empty the whole trash")
	taskPurgeCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	taskCmd.AddCommand(taskDoneCmd, taskUndoneCmd, taskRmCmd, taskRestoreCmd, taskTrashCmd, taskPurgeCmd)
}

func runComplete(cmd *cobra.Command, arg string, done bool) error {
	ids, err := board.ParseIDs(arg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	action := "undone"
	if done {
		action = "done"
	}
	complete := func(ctx context.Context, id string) (task.Task, error) {
		t, err := s.ws.CompleteTask(ctx, id, done)
		if err != nil {
			return task.Task{}, err
		}
		logActivity(s.cfg, action, t.ID, t.Title)
		return t, nil
	}

	if len(ids) > 1 {
		return runBatch(ctx, ids, func(ctx context.Context, id string) error {
			_, err := complete(ctx, id)
			return err
		})
	}
	t, err := complete(ctx, ids[0])
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Marked task %s %s: %s", output.ShortID(t.ID), action, t.Title)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	ids, err := board.ParseIDs(args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")
	hard, _ := cmd.Flags().GetBool("hard")
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch delete requires --yes")
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	action := "trash"
	if hard {
		action = "delete"
	}
	remove := func(ctx context.Context, id string) (task.Task, error) {
		t, err := s.ws.DeleteTask(ctx, id, hard)
		if err != nil {
			return task.Task{}, err
		}
		logActivity(s.cfg, action, t.ID, t.Title)
		return t, nil
	}

	if len(ids) > 1 {
		return runBatch(ctx, ids, func(ctx context.Context, id string) error {
			_, err := remove(ctx, id)
			return err
		})
	}

	if !yes {
		t, err := s.ws.Tasks.Resolve(ctx, ids[0])
		if err != nil {
			return err
		}
		verb := "Move task %s %q to the trash?"
		if hard {
			verb = "Permanently delete task %s %q?"
		}
		ok, err := confirm(fmt.Sprintf(verb, output.ShortID(t.ID), t.Title))
		if err != nil || !ok {
			return err
		}
	}

	t, err := remove(ctx, ids[0])
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": action,
			"id":     t.ID,
			"title":  t.Title,
		})
	}
	if hard {
		output.Messagef(os.Stdout, "Deleted task %s: %s", output.ShortID(t.ID), t.Title)
	} else {
		output.Messagef(os.Stdout, "Moved task %s to the trash: %s", output.ShortID(t.ID), t.Title)
	}
	return nil
}

func runTaskRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveTrashed(s.ws.Tasks.LoadDeleted(ctx), args[0])
	if err != nil {
		return err
	}
	t, err := s.ws.RestoreTask(ctx, id)
	if err != nil {
		return err
	}
	logActivity(s.cfg, "restore", t.ID, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Restored task %s: %s", output.ShortID(t.ID), t.Title)
	return nil
}

// resolveTrashed matches ref against trashed tasks by id or id prefix.
func resolveTrashed(trash []task.Task, ref string) (string, error) {
	t, found, ambiguous := task.FindPrefix(trash, ref)
	if ambiguous {
		return "", clierr.Newf(clierr.InvalidTaskID, "task ID prefix %q is ambiguous", ref).
			WithDetails(map[string]any{"input": ref})
	}
	if !found {
		return "", task.NotFound(ref)
	}
	return t.ID, nil
}

func runTaskTrash(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	trash := s.ws.Tasks.LoadDeleted(ctx)
	board.Sort(trash, board.SortTitle, false)
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, trash)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, trash)
	default:
		output.TrashTable(os.Stdout, trash)
	}
	return nil
}

func runTaskPurge(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	all, _ := cmd.Flags().GetBool("all")
	var n int
	if all {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			ok, err := confirm(fmt.Sprintf("Permanently delete %d trashed tasks?", len(s.ws.Tasks.LoadDeleted(ctx))))
			if err != nil || !ok {
				return err
			}
		}
		n, err = s.ws.Tasks.EmptyTrash(ctx)
	} else {
		n, err = s.ws.Purge(ctx)
	}
	if err != nil {
		return err
	}
	if n > 0 {
		logActivity(s.cfg, "purge", "", fmt.Sprintf("%d tasks", n))
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]int{"purged": n})
	}
	output.Messagef(os.Stdout, "Purged %d trashed tasks", n)
	return nil
}
