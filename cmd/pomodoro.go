package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/timer"
)

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo"},
	Short:   "Run pomodoro cycles",
	Long: `Runs work sessions separated by breaks, using the lengths from the config.
Every finished work session increments the completed-pomodoro counter shown
on the dashboard. Ctrl-C stops the run; the unfinished session is not counted.`,
	Args: cobra.NoArgs,
	RunE: runPomodoro,
}

var focusCmd = &cobra.Command{
	Use:   "focus ID",
	Short: "Run one work session on a task",
	Long: `Runs a single work session for the task. The session length is the task's
estimate when it is shorter than the configured work session.`,
	Args: cobra.ExactArgs(1),
	RunE: runFocus,
}

func init() {
	pomodoroCmd.Flags().IntP("cycles", "n", 1, "number of work sessions")
	pomodoroCmd.Flags().Bool("status", false, "print the completed-pomodoro count and exit")
	pomodoroCmd.Flags().Bool("reset", false, "reset the completed-pomodoro count and exit")
	pomodoroCmd.MarkFlagsMutuallyExclusive("status", "reset")
	focusCmd.Flags().Bool("done", false, "mark the task completed when the session ends")
	rootCmd.AddCommand(pomodoroCmd, focusCmd)
}

func runPomodoro(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		if !s.stats.Reset(ctx) {
			return clierr.Storage(timer.KeyCompletedPomodoros)
		}
		return printPomodoros(0)
	}
	if status, _ := cmd.Flags().GetBool("status"); status {
		return printPomodoros(s.stats.Completed(ctx))
	}

	cycles, _ := cmd.Flags().GetInt("cycles")
	if cycles < 1 {
		return clierr.New(clierr.InvalidInput, "--cycles must be at least 1")
	}
	return runSessions(ctx, s, s.durations().Plan(cycles), "")
}

func runFocus(cmd *cobra.Command, args []string) error {
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
	d := s.durations().Work
	if est := time.Duration(t.EstimatedTime) * time.Minute; est > 0 && est < d {
		d = est
	}
	sessions := []timer.Session{{Index: 1, Phase: timer.PhaseWork, Duration: d}}
	if err := runSessions(ctx, s, sessions, t.Title); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	logActivity(s.cfg, "focus", t.ID, output.FormatMinutes(int(d/time.Minute)))

	if done, _ := cmd.Flags().GetBool("done"); done {
		if _, err := s.ws.CompleteTask(ctx, t.ID, true); err != nil {
			return err
		}
		logActivity(s.cfg, "done", t.ID, t.Title)
		output.Messagef(os.Stderr, "Marked task %s done: %s", output.ShortID(t.ID), t.Title)
	}
	return nil
}

// runSessions plays sessions in the foreground. Progress goes to stderr,
// rewritten in place on a terminal; the final count goes to stdout.
func runSessions(ctx context.Context, s *session, sessions []timer.Session, label string) error {
	tty := term.IsTerminal(int(os.Stderr.Fd()))
	lastMinute := time.Duration(-1)

	r := &timer.Runner{
		Clock: timer.RealClock(),
		Stats: s.stats,
		OnSession: func(sess timer.Session) {
			name := phaseName(sess.Phase)
			if label != "" && sess.Phase == timer.PhaseWork {
				name += ": " + label
			}
			fmt.Fprintf(os.Stderr, "%s (%s)\n", name, formatClock(sess.Duration))
		},
		OnTick: func(_ timer.Session, remaining time.Duration) {
			if tty {
				fmt.Fprintf(os.Stderr, "\r  %s ", formatClock(remaining))
				return
			}
			if m := remaining.Truncate(time.Minute); m != lastMinute {
				lastMinute = m
				fmt.Fprintf(os.Stderr, "  %s left\n", formatClock(remaining))
			}
		},
		OnWorkDone: func(_ timer.Session, total int) {
			if tty {
				fmt.Fprintln(os.Stderr)
			}
			fmt.Fprintf(os.Stderr, "Work session done. Pomodoros completed: %d\n", total)
		},
	}

	err := r.Run(ctx, sessions)
	if errors.Is(err, context.Canceled) {
		if tty {
			fmt.Fprintln(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, "Stopped.")
		return printPomodoros(s.stats.Completed(context.WithoutCancel(ctx)))
	}
	if err != nil {
		return err
	}
	return printPomodoros(s.stats.Completed(ctx))
}

func printPomodoros(n int) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]int{"completed_pomodoros": n})
	}
	output.Messagef(os.Stdout, "Completed pomodoros: %d", n)
	return nil
}

func phaseName(p timer.Phase) string {
	switch p {
	case timer.PhaseWork:
		return "Work"
	case timer.PhaseShortBreak:
		return "Short break"
	case timer.PhaseLongBreak:
		return "Long break"
	}
	return string(p)
}

// formatClock renders d as MM:SS, rounding up to the next second.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60) //nolint:mnd // seconds per minute
}

