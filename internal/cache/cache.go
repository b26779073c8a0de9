// Package cache stores scored charts on disk so that rescoring an unchanged
// chart under unchanged configuration is a file read.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/projectconfig"
)

// ext is the suffix of every cache entry.
const ext = ".json.zst"

// formatVersion is hashed into every key; bump it when ChartResult changes
// shape so stale entries miss.
const formatVersion = "1"

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Cache provides caching for chart results
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a new cache instance with the specified directory
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key generates a cache key for scoring a chart. The key is based on:
// - the raw chart bytes
// - the patient defaults applied to charts that omit demographics
// - the scorer endpoint and whether scorers are enabled
// - the worker count
func Key(chart []byte, pc *projectconfig.ProjectConfig) (string, error) {
	h := sha256.New()

	if err := writeString(h, formatVersion); err != nil {
		return "", err
	}
	if _, err := h.Write(chart); err != nil {
		return "", err
	}
	if err := writeString(h, ""); err != nil {
		return "", err
	}

	if err := writeInt(h, pc.Patient.Age); err != nil {
		return "", err
	}
	if err := writeString(h, pc.Patient.Gender); err != nil {
		return "", err
	}
	if err := writeString(h, fmt.Sprint(pc.ScorersEnabled())); err != nil {
		return "", err
	}
	if err := writeString(h, pc.Scorers.Endpoint); err != nil {
		return "", err
	}
	if err := writeInt(h, pc.Scoring.Workers); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Cacheable reports whether results under pc are reproducible. Live model
// scorers can change behind the same endpoint, so their results are not
// cached.
func Cacheable(pc *projectconfig.ProjectConfig) bool {
	return pc.CacheEnabled() && !pc.ScorersEnabled()
}

// Get retrieves a cached chart result if it exists
func (c *Cache) Get(key string) (*compliance.ChartResult, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	compressed, err := os.ReadFile(c.cachePath(key))
	if err != nil {
		// Cache miss
		return nil, false
	}
	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false
	}

	var result compliance.ChartResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Invalid cache entry, treat as miss
		return nil, false
	}
	return &result, true
}

// Put stores a chart result in the cache
func (c *Cache) Put(key string, result *compliance.ChartResult) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(c.cachePath(key), encoder.EncodeAll(data, nil), 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Clear removes all cached results
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	// Safety check: only remove a directory that holds nothing but cache
	// entries.
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
		}
		if !strings.HasSuffix(entry.Name(), ext) {
			return fmt.Errorf("cache directory contains non-cache file %q - refusing to delete for safety", entry.Name())
		}
	}

	return os.RemoveAll(c.dir)
}

// Len returns the number of entries on disk.
func (c *Cache) Len() int {
	if c.dir == "" {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(c.dir, "*"+ext))
	if err != nil {
		return 0
	}
	return len(matches)
}

// cachePath returns the file path for a cache key
func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+ext)
}

// Helper functions

func writeString(w io.Writer, s string) error {
	// Write string with null byte delimiter to prevent hash collisions
	_, err := w.Write([]byte(s + "\x00"))
	return err
}

func writeInt(w io.Writer, i int) error {
	// Write int with null byte delimiter to prevent hash collisions
	_, err := fmt.Fprintf(w, "%d\x00", i)
	return err
}
