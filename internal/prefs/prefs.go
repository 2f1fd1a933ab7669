// Package prefs stores UI preferences. Unlike task, list and board keys,
// preferences are pushed to listeners when another process changes them.
package prefs

import (
	"context"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/watcher"
)

// KeySidebarCollapsed holds "true" or "false".
const KeySidebarCollapsed = "sidebar-collapsed"

// Store reads and writes preferences.
type Store struct {
	kv *kv.Adapter
}

// NewStore returns a Store backed by a.
func NewStore(a *kv.Adapter) *Store {
	return &Store{kv: a}
}

// SidebarCollapsed reports the sidebar preference; anything but "true" is false.
func (s *Store) SidebarCollapsed(ctx context.Context) bool {
	raw, ok := s.kv.ReadString(ctx, KeySidebarCollapsed)
	if !ok {
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}

// SetSidebarCollapsed stores the sidebar preference.
func (s *Store) SetSidebarCollapsed(ctx context.Context, collapsed bool) bool {
	return s.kv.WriteString(ctx, KeySidebarCollapsed, strconv.FormatBool(collapsed))
}

// Watch calls onChange with the new sidebar value whenever the file store
// in dir reports a change to it. Changes to other keys are ignored. It
// blocks until ctx is canceled.
func (s *Store) Watch(ctx context.Context, dir string, onChange func(collapsed bool), errFn func(error)) error {
	w, err := watcher.New(dir, func(keys []string) {
		if Relevant(keys) {
			onChange(s.SidebarCollapsed(ctx))
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	w.Run(ctx, errFn)
	return nil
}

// Relevant reports whether keys include a preference key.
func Relevant(keys []string) bool {
	for _, k := range keys {
		if k == KeySidebarCollapsed {
			return true
		}
	}
	return false
}
