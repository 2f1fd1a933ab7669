package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twiced-technology-gmbh/zenta/internal/logger"
)

// DefaultQuota mirrors the per-origin browser storage limit the layout was designed for.
const DefaultQuota = 5 << 20

// Adapter serializes values as JSON on top of a Backend.
type Adapter struct {
	backend Backend
	quota   int
	log     *slog.Logger
}

// NewAdapter wraps b. A quota <= 0 selects DefaultQuota.
func NewAdapter(b Backend, quota int) *Adapter {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &Adapter{backend: b, quota: quota, log: logger.With("component", "kv")}
}

// Backend returns the underlying backend.
func (a *Adapter) Backend() Backend { return a.backend }

// Write stores value under key. Serialization, quota and backend failures are
// logged and reported as false; Write never returns an error.
func (a *Adapter) Write(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		a.log.Warn("serializing value", "key", key, "err", err)
		return false
	}
	return a.put(ctx, key, data)
}

func (a *Adapter) put(ctx context.Context, key string, data []byte) bool {
	if len(data) > a.quota {
		a.log.Warn("writing value", "key", key, "size", len(data), "quota", a.quota, "err", ErrQuota)
		return false
	}
	if err := a.backend.Set(ctx, key, data); err != nil {
		a.log.Warn("writing value", "key", key, "err", err)
		return false
	}
	a.log.Debug("wrote value", "key", key, "size", len(data))
	return true
}

// Read decodes the value under key into dst. found is false (with a nil error)
// when the key is absent. A value that does not decode returns found=true and
// an error wrapping ErrCorrupt; dst is left in an unspecified state.
func (a *Adapter) Read(ctx context.Context, key string, dst any) (bool, error) {
	data, err := a.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reading %q: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("%w: %q: %w", ErrCorrupt, key, err)
	}
	return true, nil
}

// Delete removes key. Failures are logged and reported as false.
func (a *Adapter) Delete(ctx context.Context, key string) bool {
	if err := a.backend.Delete(ctx, key); err != nil {
		a.log.Warn("deleting value", "key", key, "err", err)
		return false
	}
	return true
}

// Keys lists the stored keys.
func (a *Adapter) Keys(ctx context.Context) ([]string, error) {
	return a.backend.Keys(ctx)
}

// ReadOr returns the value under key, or def when it is absent, corrupt or
// unreadable. Corrupt and unreadable values are logged.
func ReadOr[T any](ctx context.Context, a *Adapter, key string, def T) T {
	var v T
	found, err := a.Read(ctx, key, &v)
	if err != nil {
		a.log.Warn("falling back to default", "key", key, "err", err)
		return def
	}
	if !found {
		return def
	}
	return v
}

// ReadString reads a string-valued key. Values written as bare strings by
// older layouts (not JSON-quoted) are accepted as-is.
func (a *Adapter) ReadString(ctx context.Context, key string) (string, bool) {
	data, err := a.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.log.Warn("reading value", "key", key, "err", err)
		}
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return string(data), true
	}
	return s, true
}

// WriteString stores s as a JSON string.
func (a *Adapter) WriteString(ctx context.Context, key, s string) bool {
	return a.Write(ctx, key, s)
}

// ReadSlice decodes a JSON array stored under key element by element, so one
// malformed element does not discard the rest. Malformed elements are logged
// and skipped. ok is false when the key is absent or does not hold an array;
// the returned slice is then empty but non-nil.
func ReadSlice[T any](ctx context.Context, a *Adapter, key string) ([]T, bool) {
	var raw []json.RawMessage
	found, err := a.Read(ctx, key, &raw)
	if err != nil {
		a.log.Warn("falling back to default", "key", key, "err", err)
		return []T{}, false
	}
	if !found || raw == nil {
		return []T{}, false
	}
	out := make([]T, 0, len(raw))
	for i, elem := range raw {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			a.log.Warn("skipping malformed element", "key", key, "index", i, "err", err)
			continue
		}
		out = append(out, v)
	}
	return out, true
}

// WriteSlice stores items as a JSON array under key. Elements already stored
// under key that do not decode as T are kept and written after items, so a
// value this build cannot read is never lost by a save of its neighbours.
func WriteSlice[T any](ctx context.Context, a *Adapter, key string, items []T) bool {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			a.log.Warn("serializing value", "key", key, "err", err)
			return false
		}
		out = append(out, data)
	}
	kept := unreadable[T](ctx, a, key)
	if len(kept) > 0 {
		a.log.Warn("keeping unreadable elements", "key", key, "count", len(kept))
	}
	return a.Write(ctx, key, append(out, kept...))
}

func unreadable[T any](ctx context.Context, a *Adapter, key string) []json.RawMessage {
	var raw []json.RawMessage
	if found, err := a.Read(ctx, key, &raw); err != nil || !found {
		return nil
	}
	var out []json.RawMessage
	for _, elem := range raw {
		var v T
		if json.Unmarshal(elem, &v) != nil {
			out = append(out, elem)
		}
	}
	return out
}
