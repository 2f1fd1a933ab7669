package board

import (
	"context"
	"log/slog"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/logger"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// Storage keys. KeyLegacyColumns held a single board shared by every list
// and is only read during migration.
const (
	KeyLegacyColumns = "kanban-columns"
	KeyColumnsPrefix = "kanban-columns-"
	KeyCurrentList   = "current-list-id"
)

// Key returns the storage key of a list's board.
func Key(listID string) string {
	return KeyColumnsPrefix + listID
}

// Store persists one board per list.
type Store struct {
	kv       *kv.Adapter
	defaults []Column
	log      *slog.Logger
}

// NewStore returns a Store backed by a. Boards that are absent or unreadable
// load as a copy of defaults; nil selects DefaultColumns.
func NewStore(a *kv.Adapter, defaults []Column) *Store {
	if len(defaults) == 0 {
		defaults = DefaultColumns()
	}
	return &Store{kv: a, defaults: Normalize(defaults), log: logger.With("component", "board")}
}

// Defaults returns a fresh copy of the default columns.
func (s *Store) Defaults() []Column {
	return Clone(s.defaults)
}

// Load returns the columns of a list's board. An absent board is migrated
// from the legacy shared board when one exists; otherwise, and whenever the
// stored value cannot be parsed, the default columns are returned.
func (s *Store) Load(ctx context.Context, listID string) []Column {
	var columns []Column
	found, err := s.kv.Read(ctx, Key(listID), &columns)
	switch {
	case err != nil:
		s.log.Warn("board unreadable, using default columns", "list", listID, "err", err)
		return s.Defaults()
	case found:
		columns = Normalize(columns)
		if len(columns) == 0 {
			return s.Defaults()
		}
		return columns
	}

	if legacy, ok := s.legacyFor(ctx, listID); ok {
		if s.Save(ctx, listID, legacy) {
			s.log.Info("migrated legacy board", "list", listID)
		}
		return legacy
	}
	return s.Defaults()
}

// Save writes a list's board. It reports false when the write failed.
func (s *Store) Save(ctx context.Context, listID string, columns []Column) bool {
	return s.kv.Write(ctx, Key(listID), Normalize(columns))
}

// Delete drops a list's board.
func (s *Store) Delete(ctx context.Context, listID string) bool {
	return s.kv.Delete(ctx, Key(listID))
}

// legacyFor returns the legacy shared board filtered to the tasks of listID.
// Tasks written before lists existed carry no ListID and belong to the default list.
func (s *Store) legacyFor(ctx context.Context, listID string) ([]Column, bool) {
	var legacy []Column
	found, err := s.kv.Read(ctx, KeyLegacyColumns, &legacy)
	if err != nil {
		s.log.Warn("legacy board unreadable, skipping migration", "err", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	legacy = Normalize(legacy)
	if len(legacy) == 0 {
		return nil, false
	}
	for ci := range legacy {
		kept := make([]task.Task, 0, len(legacy[ci].Tasks))
		for _, t := range legacy[ci].Tasks {
			if t.ListID == listID || (t.ListID == "" && listID == list.DefaultID) {
				kept = append(kept, t)
			}
		}
		legacy[ci].Tasks = kept
	}
	return legacy, true
}

// MigrateLegacy copies the legacy shared board into the per-list key of
// every list that has no board yet, then deletes the legacy key. It returns
// the number of boards written. The legacy key is kept if any write fails.
func (s *Store) MigrateLegacy(ctx context.Context, listIDs []string) int {
	var shared []Column
	if found, _ := s.kv.Read(ctx, KeyLegacyColumns, &shared); !found {
		return 0
	}

	migrated := 0
	failed := false
	for _, id := range listIDs {
		var existing []Column
		if found, _ := s.kv.Read(ctx, Key(id), &existing); found {
			continue
		}
		columns, ok := s.legacyFor(ctx, id)
		if !ok {
			return migrated
		}
		if !s.Save(ctx, id, columns) {
			failed = true
			continue
		}
		migrated++
	}
	if !failed {
		s.kv.Delete(ctx, KeyLegacyColumns)
		s.log.Info("legacy board migrated", "boards", migrated)
	}
	return migrated
}

// CurrentList returns the ID of the list last opened, or "" when none is stored.
func (s *Store) CurrentList(ctx context.Context) string {
	id, _ := s.kv.ReadString(ctx, KeyCurrentList)
	return id
}

// SetCurrentList records the list last opened.
func (s *Store) SetCurrentList(ctx context.Context, listID string) bool {
	return s.kv.WriteString(ctx, KeyCurrentList, listID)
}
