package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "Manage task lists",
	Long: `Lists group tasks; each list has its own kanban board. Lists can be
referenced by ID, ID prefix or title.`,
}

var listLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"all"},
	Short:   "Show all lists",
	Args:    cobra.NoArgs,
	RunE:    runListLs,
}

var listAddCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"create"},
	Short:   "Create a list",
	Args:    cobra.ExactArgs(1),
	RunE:    runListAdd,
}

var listRenameCmd = &cobra.Command{
	Use:   "rename LIST TITLE",
	Short: "Rename a list",
	Args:  cobra.ExactArgs(2), //nolint:mnd // list and title
	RunE:  runListRename,
}

var listRmCmd = &cobra.Command{
	Use:     "rm LIST",
	Aliases: []string{"delete"},
	Short:   "Delete a list",
	Long: `Deletes a list and its board. Tasks keep pointing at the removed list
and stop showing up on boards; 'task edit --list' moves them elsewhere.`,
	Args: cobra.ExactArgs(1),
	RunE: runListRm,
}

var listUseCmd = &cobra.Command{
	Use:   "use LIST",
	Short: "Switch the current list",
	Args:  cobra.ExactArgs(1),
	RunE:  runListUse,
}

var listShowCmd = &cobra.Command{
	Use:   "show [LIST]",
	Short: "Show a list with its tasks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runListShow,
}

func init() {
	listRmCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	listCmd.AddCommand(listLsCmd, listAddCmd, listRenameCmd, listRmCmd, listUseCmd, listShowCmd)
	rootCmd.AddCommand(listCmd)
}

// resolveList finds a list by exact ID, unambiguous ID prefix or
// case-insensitive title.
func resolveList(ctx context.Context, s *session, ref string) (list.List, error) {
	lists := s.ws.AllLists(ctx)
	if l, ok := list.Find(lists, ref); ok {
		return l, nil
	}
	var matches []list.List
	for _, l := range lists {
		if strings.HasPrefix(l.ID, ref) || strings.EqualFold(l.Title, ref) {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return list.List{}, list.NotFound(ref)
	case 1:
		return matches[0], nil
	}
	return list.List{}, clierr.Newf(clierr.InvalidInput, "list reference %q is ambiguous", ref).
		WithDetails(map[string]any{"input": ref, "matches": len(matches)})
}

// sessionList resolves the command's --list flag, defaulting to the current list.
func sessionList(cmd *cobra.Command, s *session) (list.List, error) {
	ref, _ := cmd.Flags().GetString("list")
	if ref == "" {
		return s.ws.CurrentList(cmd.Context()), nil
	}
	return resolveList(cmd.Context(), s, ref)
}

func runListLs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	lists := s.ws.AllLists(ctx)
	current := s.ws.CurrentList(ctx).ID
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, lists)
	case output.FormatCompact:
		output.ListCompact(os.Stdout, lists, current)
	default:
		output.ListTable(os.Stdout, lists, current)
	}
	return nil
}

func runListAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := s.ws.CreateList(ctx, args[0])
	if err != nil {
		return err
	}
	logListActivity(s.cfg, "create", l.ID, l.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, l)
	}
	output.Messagef(os.Stdout, "Created list %s: %s", output.ShortID(l.ID), l.Title)
	return nil
}

func runListRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := resolveList(ctx, s, args[0])
	if err != nil {
		return err
	}
	old := l.Title
	l, err = s.ws.RenameList(ctx, l.ID, args[1])
	if err != nil {
		return err
	}
	logListActivity(s.cfg, "rename", l.ID, fmt.Sprintf("%s -> %s", old, l.Title))

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, l)
	}
	output.Messagef(os.Stdout, "Renamed list %s: %s", output.ShortID(l.ID), l.Title)
	return nil
}

func runListRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := resolveList(ctx, s, args[0])
	if err != nil {
		return err
	}
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		prompt := fmt.Sprintf("Delete list %q with %d task(s)?", l.Title, len(l.Tasks))
		ok, err := confirm(prompt)
		if err != nil || !ok {
			return err
		}
	}
	if err := s.ws.RemoveList(ctx, l.ID); err != nil {
		return err
	}
	logListActivity(s.cfg, "delete", l.ID, l.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"status": "deleted", "id": l.ID, "title": l.Title})
	}
	output.Messagef(os.Stdout, "Deleted list %s: %s", output.ShortID(l.ID), l.Title)
	return nil
}

func runListUse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := resolveList(ctx, s, args[0])
	if err != nil {
		return err
	}
	if err := s.ws.UseList(ctx, l.ID); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, l)
	}
	output.Messagef(os.Stdout, "Now using list %s: %s", output.ShortID(l.ID), l.Title)
	return nil
}

func runListShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l := s.ws.CurrentList(ctx)
	if len(args) == 1 {
		if l, err = resolveList(ctx, s, args[0]); err != nil {
			return err
		}
	}
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, l)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, l.Tasks)
	default:
		output.Messagef(os.Stdout, "%s (%s)", l.Title, output.ShortID(l.ID))
		output.TaskTable(os.Stdout, l.Tasks, map[string]string{l.ID: l.Title})
	}
	return nil
}
