package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/timer"
	"github.com/twiced-technology-gmbh/zenta/internal/tui"
	"github.com/twiced-technology-gmbh/zenta/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Open the interactive board",
	Args:    cobra.NoArgs,
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Log lines would tear the alt screen.
	logSink = io.Discard
	defer func() { logSink = nil }()

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	model := tui.NewBoard(ctx, s.ws, tui.Options{
		Prefs:  s.prefs,
		Stats:  s.stats,
		Clock:  timer.RealClock(),
		Focus:  s.durations().Work,
		LogDir: s.cfg.Dir(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Changes made by other zenta processes show up live on the file backend.
	if fb, ok := s.backend.(*kv.FileBackend); ok {
		w, err := watcher.New(fb.Dir(), func(keys []string) {
			p.Send(tui.ReloadMsg{Keys: keys})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
		} else {
			defer w.Close()
			go w.Run(ctx, nil)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
