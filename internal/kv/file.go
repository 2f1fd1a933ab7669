package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	fileMode    = 0o600
	dirMode     = 0o750
	fileSuffix  = ".json"
	lockName    = ".lock"
	tempPattern = ".tmp-*"
)

// FileBackend stores one file per key in a directory. Writes go through a
// temp file and a rename while holding an exclusive lock on dir/.lock, so
// readers in other processes never observe a torn value.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("file backend: empty directory")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the store directory.
func (b *FileBackend) Dir() string { return b.dir }

// Filename returns the file name used for key.
func Filename(key string) string {
	return url.PathEscape(key) + fileSuffix
}

// KeyFromFilename reverses Filename. ok is false for files that are not keys
// (lock file, temp files, foreign files).
func KeyFromFilename(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(name, fileSuffix))
	if err != nil {
		return "", false
	}
	return key, true
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, Filename(key))
}

// Get implements Backend.
func (b *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key)) //nolint:gosec // path built from escaped key
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", Filename(key), err)
	}
	return data, nil
}

// Set implements Backend.
func (b *FileBackend) Set(_ context.Context, key string, value []byte) error {
	unlock, err := lock(filepath.Join(b.dir, lockName))
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock

	tmp, err := os.CreateTemp(b.dir, tempPattern)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, fileMode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpPath, b.path(key)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Delete implements Backend.
func (b *FileBackend) Delete(_ context.Context, key string) error {
	unlock, err := lock(filepath.Join(b.dir, lockName))
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock

	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", Filename(key), err)
	}
	return nil
}

// Keys implements Backend. Keys are returned sorted.
func (b *FileBackend) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if key, ok := KeyFromFilename(entry.Name()); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Backend.
func (b *FileBackend) Close() error { return nil }
