package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tidwall/sjson"
)

func TestCachePutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	wasm := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
	if err := c.Put("deadbeef", wasm); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get("deadbeef")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if string(got) != string(wasm) {
		t.Errorf("got %x, want %x", got, wasm)
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := c.Get("nonexistent"); ok {
		t.Fatal("expected a cache miss for a key never Put")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Put("key1", []byte{1, 2, 3}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Invalidate("key1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok := c.Get("key1"); ok {
		t.Fatal("expected a miss after Invalidate")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Put("stale", []byte{9}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Back-date the index entry past the TTL directly, since touch always
	// stamps "now".
	past := time.Now().Add(-TTL - time.Hour)
	index, err := sjson.Set(c.readIndex(), "stale.expires", past.UnixNano())
	if err != nil {
		t.Fatalf("sjson.Set: %v", err)
	}
	if err := os.WriteFile(c.indexPath(), []byte(index), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, ok := c.Get("stale"); ok {
		t.Fatal("expected a miss for an expired entry")
	}

	removed, err := c.Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected Sweep to remove 1 expired entry, got %d", removed)
	}
}

func TestCacheKeyStableForUnchangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.luma")
	if err := os.WriteFile(path, []byte("func f() -> i32 { return 1; }"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	k1, err := Key(path)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	k2, err := Key(path)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if k1 != k2 {
		t.Errorf("Key should be stable for an unmodified file: %q != %q", k1, k2)
	}
}

func TestCacheKeyChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.luma")
	if err := os.WriteFile(path, []byte("func f() -> i32 { return 1; }"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	k1, err := Key(path)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}

	if err := os.WriteFile(path, []byte("func f() -> i32 { return 2; }"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	k2, err := Key(path)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if k1 == k2 {
		t.Error("Key should change when file content changes")
	}
}
