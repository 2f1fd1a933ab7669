package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

var taskExportCmd = &cobra.Command{
	Use:   "export DIR",
	Short: "Export tasks as markdown files",
	Long: `Writes one markdown file per task into DIR: YAML frontmatter with the
task fields followed by the description. Exports the current list unless
--all or --list is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskExport,
}

var taskImportCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Import tasks from markdown files",
	Long: `Reads every .md file in DIR and saves it as a task. Files whose ID matches
an existing task update it. Tasks without a list, or whose list no longer
exists, go to the current list (or --list). Malformed files are skipped
with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskImport,
}

func init() {
	taskExportCmd.Flags().StringP("list", "l", "", "list id (default: current list)")
	taskExportCmd.Flags().Bool("all", false, "export tasks of every list")
	taskExportCmd.MarkFlagsMutuallyExclusive("all", "list")
	taskImportCmd.Flags().StringP("list", "l", "", "list for tasks without a valid one")
	taskCmd.AddCommand(taskExportCmd, taskImportCmd)
}

func runTaskExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks := s.ws.Tasks.LoadAll(ctx)
	if all, _ := cmd.Flags().GetBool("all"); !all {
		l, err := sessionList(cmd, s)
		if err != nil {
			return err
		}
		tasks = task.InList(tasks, l.ID)
	}

	paths, err := task.Export(args[0], tasks)
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"exported": len(paths), "files": paths})
	}
	output.Messagef(os.Stdout, "Exported %d tasks to %s", len(paths), args[0])
	return nil
}

func runTaskImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, warnings, err := task.Import(args[0])
	if err != nil {
		return err
	}
	fallback, err := sessionList(cmd, s)
	if err != nil {
		return err
	}
	known := s.listTitles(ctx)

	imported := 0
	for _, t := range tasks {
		if _, ok := known[t.ListID]; !ok {
			t.ListID = fallback.ID
		}
		if _, err := s.ws.SaveTask(ctx, t); err != nil {
			warnings = append(warnings, task.ReadWarning{File: task.MarkdownFilename(t), Err: err})
			continue
		}
		imported++
	}
	if imported > 0 {
		logActivity(s.cfg, "import", "", fmt.Sprintf("%d tasks from %s", imported, args[0]))
	}

	if outputFormat() == output.FormatJSON {
		skipped := make([]map[string]string, len(warnings))
		for i, w := range warnings {
			skipped[i] = map[string]string{"file": w.File, "error": w.Err.Error()}
		}
		return output.JSON(os.Stdout, map[string]any{"imported": imported, "skipped": skipped})
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", w.File, w.Err)
	}
	output.Messagef(os.Stdout, "Imported %d tasks from %s", imported, args[0])
	if imported == 0 && len(warnings) > 0 {
		return clierr.New(clierr.InvalidInput, "no task could be imported")
	}
	return nil
}
