package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"b"},
	Short:   "Show and edit a list's kanban board",
	Long: `Every list has a kanban board. Moving a task into the done column marks it
completed; moving it out marks it open again. Columns can be referenced by
ID or title.`,
}

var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the board of the current list",
	Args:  cobra.NoArgs,
	RunE:  runBoardShow,
}

var boardMoveCmd = &cobra.Command{
	Use:     "move ID COLUMN",
	Aliases: []string{"mv"},
	Short:   "Move a task to another column",
	Args:    cobra.ExactArgs(2), //nolint:mnd // task and column
	RunE:    runBoardMove,
}

var columnCmd = &cobra.Command{
	Use:     "column",
	Aliases: []string{"col"},
	Short:   "Manage board columns",
}

var columnAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Append a column",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumnAdd,
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename COLUMN TITLE",
	Short: "Rename a column",
	Args:  cobra.ExactArgs(2), //nolint:mnd // column and title
	RunE:  runColumnRename,
}

var columnRmCmd = &cobra.Command{
	Use:     "rm COLUMN",
	Aliases: []string{"delete"},
	Short:   "Remove an empty column",
	Args:    cobra.ExactArgs(1),
	RunE:    runColumnRm,
}

func init() {
	for _, c := range []*cobra.Command{boardShowCmd, boardMoveCmd, columnAddCmd, columnRenameCmd, columnRmCmd} {
		c.Flags().StringP("list", "l", "", "list (default: current list)")
	}
	boardMoveCmd.Flags().IntP("index", "i", -1, "position in the target column (default: append)")

	columnCmd.AddCommand(columnAddCmd, columnRenameCmd, columnRmCmd)
	boardCmd.AddCommand(boardShowCmd, boardMoveCmd, columnCmd)
	rootCmd.AddCommand(boardCmd)
}

func runBoardShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := sessionList(cmd, s)
	if err != nil {
		return err
	}
	cols, err := s.ws.Board(ctx, l.ID)
	if err != nil {
		return err
	}
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, map[string]any{"list": l.ID, "title": l.Title, "columns": cols})
	case output.FormatCompact:
		output.BoardCompact(os.Stdout, l, cols)
	default:
		output.BoardTable(os.Stdout, l, cols, s.ws.DoneTitle())
	}
	return nil
}

func runBoardMove(cmd *cobra.Command, args []string) error {
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
	cols, err := s.ws.Board(ctx, t.ListID)
	if err != nil {
		return err
	}
	col, _, err := board.ResolveColumn(cols, args[1])
	if err != nil {
		return err
	}
	index, _ := cmd.Flags().GetInt("index")

	moved, err := s.ws.MoveTask(ctx, t.ID, col.ID, index)
	if err != nil {
		return err
	}
	logActivity(s.cfg, "move", moved.ID, col.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, moved)
	}
	output.Messagef(os.Stdout, "Moved task %s to %s", output.ShortID(moved.ID), col.Title)
	return nil
}

// editColumns applies fn to the board of the --list list and saves the result.
func editColumns(cmd *cobra.Command, fn func([]board.Column) ([]board.Column, string, error)) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := sessionList(cmd, s)
	if err != nil {
		return err
	}
	cols, err := s.ws.Board(ctx, l.ID)
	if err != nil {
		return err
	}
	cols, msg, err := fn(cols)
	if err != nil {
		return err
	}
	if err := s.ws.SaveBoard(ctx, l.ID, cols); err != nil {
		return err
	}
	logListActivity(s.cfg, "columns", l.ID, msg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"list": l.ID, "columns": cols})
	}
	output.Messagef(os.Stdout, "%s", msg)
	return nil
}

func runColumnAdd(cmd *cobra.Command, args []string) error {
	return editColumns(cmd, func(cols []board.Column) ([]board.Column, string, error) {
		cols, col, err := board.AddColumn(cols, args[0])
		return cols, fmt.Sprintf("Added column %q", col.Title), err
	})
}

func runColumnRename(cmd *cobra.Command, args []string) error {
	return editColumns(cmd, func(cols []board.Column) ([]board.Column, string, error) {
		col, _, err := board.ResolveColumn(cols, args[0])
		if err != nil {
			return cols, "", err
		}
		cols, err = board.RenameColumn(cols, col.ID, args[1])
		return cols, fmt.Sprintf("Renamed column %q to %q", col.Title, args[1]), err
	})
}

func runColumnRm(cmd *cobra.Command, args []string) error {
	return editColumns(cmd, func(cols []board.Column) ([]board.Column, string, error) {
		col, _, err := board.ResolveColumn(cols, args[0])
		if err != nil {
			return cols, "", err
		}
		cols, err = board.RemoveColumn(cols, col.ID)
		return cols, fmt.Sprintf("Removed column %q", col.Title), err
	})
}
