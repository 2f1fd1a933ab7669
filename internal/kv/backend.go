// Package kv is the key-value layer every zenta store persists through.
// A Backend moves opaque bytes; the Adapter owns the JSON contract and the
// failure policy (writes report false, reads hand corrupt values back to the caller).
package kv

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("key not found")
	ErrCorrupt  = errors.New("stored value is not valid JSON")
	ErrQuota    = errors.New("value exceeds storage quota")
)

// Backend stores raw values under string keys.
type Backend interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete of an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
	KindMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Kind string
	// Path is the store directory (file) or database file (sqlite).
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open constructs the backend described by opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Kind {
	case KindFile, "":
		return NewFileBackend(opts.Path)
	case KindSQLite:
		return NewSQLiteBackend(opts.Path)
	case KindRedis:
		return NewRedisBackend(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}
