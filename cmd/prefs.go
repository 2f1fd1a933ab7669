package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change UI preferences",
}

var prefsSidebarCmd = &cobra.Command{
	Use:   "sidebar [on|off]",
	Short: "Show or set whether the board sidebar is collapsed",
	Long: `"on" collapses the sidebar, "off" expands it. Running boards pick the
change up immediately when the file backend is used.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runPrefsSidebar,
}

func init() {
	prefsCmd.AddCommand(prefsSidebarCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsSidebar(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		collapsed, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		if !s.prefs.SetSidebarCollapsed(ctx, collapsed) {
			return clierr.Storage(prefs.KeySidebarCollapsed)
		}
	}

	collapsed := s.prefs.SidebarCollapsed(ctx)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]bool{"sidebar_collapsed": collapsed})
	}
	state := "expanded"
	if collapsed {
		state = "collapsed"
	}
	output.Messagef(os.Stdout, "Sidebar %s", state)
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, clierr.Newf(clierr.InvalidInput, "expected on or off, got %q", s)
	}
	return v, nil
}
