// Package cache is lumac's on-disk compilation cache: a directory of
// "<key>.wasm" binaries plus one JSON index file mapping each key to its
// creation and expiry time. The cache key is sha256(content || mtime), and
// entries expire after 7 days, mirroring the WASMCache the original compiler
// kept alongside its wasmtime runtime.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// TTL is how long a cache entry stays valid after creation.
const TTL = 7 * 24 * time.Hour

const indexFile = "index.json"

// Cache stores compiled WASM binaries on disk, keyed by source content and
// modification time.
type Cache struct {
	dir string
}

// Open ensures dir exists and returns a Cache rooted at it.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: creating %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache key for a source file: sha256 of its content
// concatenated with its modification time, matching the original compiler's
// `_get_cache_key`.
func Key(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cache: reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cache: stating %s: %w", path, err)
	}

	sum := sha256.Sum256(fmt.Appendf(content, "%v", info.ModTime().UnixNano()))
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the cached WASM binary for key, or (nil, false) if there is no
// entry or it has expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	expires, ok := c.expiresAt(key)
	if !ok || time.Now().After(expires) {
		return nil, false
	}

	data, err := os.ReadFile(c.binaryPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores wasm under key with a fresh TTL, overwriting any prior entry.
func (c *Cache) Put(key string, wasm []byte) error {
	if err := os.WriteFile(c.binaryPath(key), wasm, 0o644); err != nil {
		return fmt.Errorf("cache: writing binary for %s: %w", key, err)
	}
	return c.touch(key)
}

// Invalidate removes key's binary and index entry, if present.
func (c *Cache) Invalidate(key string) error {
	if err := os.Remove(c.binaryPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: removing binary for %s: %w", key, err)
	}
	return c.removeIndexEntry(key)
}

func (c *Cache) binaryPath(key string) string {
	return filepath.Join(c.dir, key+".wasm")
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.dir, indexFile)
}

func (c *Cache) readIndex() string {
	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// expiresAt reads key's expiry timestamp from the JSON index via gjson,
// returning ok=false if the key has no entry.
func (c *Cache) expiresAt(key string) (time.Time, bool) {
	result := gjson.Get(c.readIndex(), gjsonPath(key)+".expires")
	if !result.Exists() {
		return time.Time{}, false
	}
	return time.Unix(0, result.Int()), true
}

// touch writes (or refreshes) key's created/expires pair into the JSON
// index via sjson, preserving every other entry already in the file.
func (c *Cache) touch(key string) error {
	now := time.Now()
	index := c.readIndex()

	var err error
	index, err = sjson.Set(index, gjsonPath(key)+".created", now.UnixNano())
	if err != nil {
		return fmt.Errorf("cache: updating index for %s: %w", key, err)
	}
	index, err = sjson.Set(index, gjsonPath(key)+".expires", now.Add(TTL).UnixNano())
	if err != nil {
		return fmt.Errorf("cache: updating index for %s: %w", key, err)
	}

	return os.WriteFile(c.indexPath(), []byte(index), 0o644)
}

func (c *Cache) removeIndexEntry(key string) error {
	index, err := sjson.Delete(c.readIndex(), gjsonPath(key))
	if err != nil {
		return fmt.Errorf("cache: removing index entry for %s: %w", key, err)
	}
	return os.WriteFile(c.indexPath(), []byte(index), 0o644)
}

// gjsonPath returns a cache key unchanged for use as a gjson/sjson object
// path segment. No escaping is done; keys are hex sha256 digests, so no
// gjson path characters occur in practice.
func gjsonPath(key string) string {
	return key
}

// Sweep removes every expired entry from the index and its binary on disk,
// returning the number of entries removed.
func (c *Cache) Sweep() (int, error) {
	index := c.readIndex()
	removed := 0

	var keys []string
	gjson.Parse(index).ForEach(func(k, v gjson.Result) bool {
		expires := v.Get("expires").Int()
		if time.Now().After(time.Unix(0, expires)) {
			keys = append(keys, k.String())
		}
		return true
	})

	for _, key := range keys {
		if err := c.Invalidate(key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
