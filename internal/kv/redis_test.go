package kv

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"
)

// Integration-style test: runs only if REDIS_ADDR is set.
func TestRedisBackendIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b, err := NewRedisBackend(ctx, RedisOptions{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		Prefix:   "zenta-test-" + strconv.FormatInt(time.Now().UnixNano(), 36) + ":",
	})
	if err != nil {
		t.Fatalf("NewRedisBackend failed: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := b.Keys(context.Background())
		for _, k := range keys {
			_ = b.Delete(context.Background(), k)
		}
		_ = b.Close()
	})

	exerciseBackend(t, b)
}

func TestRedisBackendRequiresAddr(t *testing.T) {
	t.Parallel()
	if _, err := NewRedisBackend(context.Background(), RedisOptions{}); err == nil {
		t.Error("expected error for empty address")
	}
}
