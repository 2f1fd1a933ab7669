package cmd

import (
	"context"
	"fmt"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/config"
	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/logger"
	"github.com/twiced-technology-gmbh/zenta/internal/prefs"
	"github.com/twiced-technology-gmbh/zenta/internal/reconcile"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
	"github.com/twiced-technology-gmbh/zenta/internal/timer"
)

// session bundles the stores a command works with.
type session struct {
	cfg     *config.Config
	backend kv.Backend
	ws      *reconcile.Workspace
	stats   *timer.Stats
	prefs   *prefs.Store
}

// openSession loads the config and opens the configured storage backend.
// Legacy boards are migrated on open. Callers must Close the session.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := kv.Open(ctx, kv.Options{
		Kind:          cfg.Storage.Backend,
		Path:          cfg.StoragePath(),
		RedisAddr:     cfg.Storage.RedisAddr,
		RedisPassword: cfg.Storage.RedisPassword,
		RedisDB:       cfg.Storage.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	retention, err := cfg.RetentionDuration()
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	a := kv.NewAdapter(backend, cfg.Storage.QuotaBytes)
	ws := reconcile.NewWorkspace(a, reconcile.Options{
		Columns:   configColumns(cfg),
		DoneTitle: cfg.Board.DoneColumn,
		Retention: retention,
	})
	if n := ws.Migrate(ctx); n > 0 {
		logger.Info("migrated legacy board", "lists", n)
	}
	return &session{
		cfg:     cfg,
		backend: backend,
		ws:      ws,
		stats:   timer.NewStats(a),
		prefs:   prefs.NewStore(a),
	}, nil
}

// Close releases the storage backend.
func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		logger.Warn("closing storage", "err", err)
	}
}

// listTitles maps list ids to titles for table output.
func (s *session) listTitles(ctx context.Context) map[string]string {
	lists := s.ws.Lists.Load(ctx)
	titles := make(map[string]string, len(lists))
	for _, l := range lists {
		titles[l.ID] = l.Title
	}
	return titles
}

// durations returns the configured pomodoro lengths.
func (s *session) durations() timer.Durations {
	work, short, long := s.cfg.PomodoroDurations()
	return timer.Durations{Work: work, ShortBreak: short, LongBreak: long, LongEvery: s.cfg.Pomodoro.LongEvery}
}

func configColumns(cfg *config.Config) []board.Column {
	cols := make([]board.Column, len(cfg.Board.Columns))
	for i, c := range cfg.Board.Columns {
		cols[i] = board.Column{ID: c.ID, Title: c.Title, Tasks: []task.Task{}}
	}
	return cols
}
