package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/logger"
	"github.com/twiced-technology-gmbh/zenta/internal/output"
	"github.com/twiced-technology-gmbh/zenta/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print store changes and purge the trash on schedule",
	Long: `Runs in the foreground until interrupted. On the file backend every change
to a stored key is printed as it happens. Independently of the backend,
trashed tasks past retention.deleted_tasks are purged on the
retention.purge_schedule cron schedule.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("no-purge", false, "do not purge the trash on schedule")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if noPurge, _ := cmd.Flags().GetBool("no-purge"); !noPurge {
		c := cron.New()
		if _, err := c.AddFunc(s.cfg.Retention.PurgeSchedule, func() { purgeJob(ctx, s) }); err != nil {
			return err
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
		logger.Info("purge scheduled", "schedule", s.cfg.Retention.PurgeSchedule)
	}

	fb, ok := s.backend.(*kv.FileBackend)
	if !ok {
		output.Messagef(os.Stderr, "Change notifications need the file backend; only purging.")
		<-ctx.Done()
		return nil
	}

	w, err := watcher.New(fb.Dir(), func(keys []string) {
		printChange(keys)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	output.Messagef(os.Stderr, "Watching %s (Ctrl-C to stop)", fb.Dir())
	w.Run(ctx, func(err error) { logger.Warn("watching store", "err", err) })
	return nil
}

func printChange(keys []string) {
	now := time.Now().Format(time.RFC3339)
	if outputFormat() == output.FormatJSON {
		_ = output.JSON(os.Stdout, map[string]any{"time": now, "keys": keys})
		return
	}
	output.Messagef(os.Stdout, "%s changed: %s", now, strings.Join(keys, ", "))
}

func purgeJob(ctx context.Context, s *session) {
	n, err := s.ws.Purge(ctx)
	if err != nil {
		logger.Warn("purging trash", "err", err)
		return
	}
	if n > 0 {
		logger.Info("purged trash", "count", n)
		logActivity(s.cfg, "purge", "", strconv.Itoa(n)+" tasks")
	}
}
