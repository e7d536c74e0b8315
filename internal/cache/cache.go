// Package cache provides keyed, date-scoped storage of computed prayer
// times so repeated queries for the same day do not recompute. Entries live
// in memory behind an RWMutex and are mirrored to JSON files on disk
// best-effort; disk failures are logged and never fatal.
//
// Eviction is age-based and lazy: a read checks the date and TTL itself,
// and InvalidateOlderThan sweeps the rest. Entries are a handful of
// timestamps, so growth is bounded by time rather than by an LRU cap.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/times"
)

const (
	entryFilePattern = "timings_%s.json" // keyed by hash

	// DefaultTTL keeps entries for a week; the same-day check below makes
	// older same-key entries stale long before the TTL does.
	DefaultTTL = 7 * 24 * time.Hour
)

// Entry stores one day's computed times along with the inputs that produced
// them. Entries are read-only to callers: the cache hands out copies and a
// newer Put supersedes rather than mutates.
type Entry struct {
	Date       string          `json:"date"` // YYYY-MM-DD in the query zone
	Coords     geo.Coordinates `json:"coords"`
	Method     method.Method   `json:"method"`
	Madhab     method.Madhab   `json:"madhab"`
	Times      times.Times     `json:"times"`
	ComputedAt time.Time       `json:"computed_at"`
}

// Cache is safe for concurrent use: readers share the RLock, writers are
// serialized.
type Cache struct {
	mu  sync.RWMutex
	dir string
	ttl time.Duration
	mem map[string]Entry
}

// New creates a Cache rooted at the given directory with the default TTL.
// If dir is empty, it defaults to ~/.cache/salat/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "salat")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir, ttl: DefaultTTL, mem: make(map[string]Entry)}, nil
}

// SetTTL overrides the default entry lifetime.
func (c *Cache) SetTTL(ttl time.Duration) {
	c.mu.Lock()
	c.ttl = ttl
	c.mu.Unlock()
}

// key builds a deterministic hash from every input that affects the result.
// Coordinates are rounded to four decimals (~11 m) so GPS jitter between
// runs still hits the same entry.
func key(date string, coords geo.Coordinates, m method.Method, md method.Madhab) string {
	raw := fmt.Sprintf("%s|%.4f|%.4f|%s|%s", date, coords.Latitude, coords.Longitude, m, md)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

// Get returns the cached entry for the given inputs, or nil on a miss.
// An entry for a different calendar day, or one older than the TTL, is a
// miss (and is dropped from memory on the spot).
func (c *Cache) Get(coords geo.Coordinates, date time.Time, m method.Method, md method.Madhab) *Entry {
	dateStr := date.Format("2006-01-02")
	k := key(dateStr, coords, m, md)

	c.mu.RLock()
	entry, ok := c.mem[k]
	ttl := c.ttl
	c.mu.RUnlock()

	if !ok {
		loaded := c.loadFile(k)
		if loaded == nil {
			return nil
		}
		entry = *loaded
		c.mu.Lock()
		c.mem[k] = entry
		c.mu.Unlock()
	}

	if entry.Date != dateStr || time.Since(entry.ComputedAt) > ttl {
		c.mu.Lock()
		delete(c.mem, k)
		c.mu.Unlock()
		return nil
	}

	out := entry
	return &out
}

// Put stores a computed result, superseding any previous entry for the same
// key. The disk mirror is best-effort.
func (c *Cache) Put(coords geo.Coordinates, date time.Time, m method.Method, md method.Madhab, t *times.Times) {
	dateStr := date.Format("2006-01-02")
	k := key(dateStr, coords, m, md)

	entry := Entry{
		Date:       dateStr,
		Coords:     coords,
		Method:     m,
		Madhab:     md,
		Times:      *t,
		ComputedAt: time.Now(),
	}

	c.mu.Lock()
	c.mem[k] = entry
	c.mu.Unlock()

	c.writeFile(k, entry)
}

// InvalidateOlderThan removes every entry whose ComputedAt is older than
// maxAge, from memory and from disk. Unreadable files count as stale and
// are removed too.
func (c *Cache) InvalidateOlderThan(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)

	c.mu.Lock()
	for k, e := range c.mem {
		if e.ComputedAt.Before(cutoff) {
			delete(c.mem, k)
		}
	}
	c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", c.dir).Msg("cache sweep: cannot read cache directory")
		return
	}

	for _, de := range entries {
		name := de.Name()
		if !strings.HasPrefix(name, "timings_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(c.dir, name)

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil || e.ComputedAt.Before(cutoff) {
			if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				log.Warn().Err(rmErr).Str("path", path).Msg("cache sweep: cannot remove stale entry")
			}
		}
	}
}

// loadFile reads one entry from the disk mirror. Missing or corrupt files
// are a plain miss.
func (c *Cache) loadFile(k string) *Entry {
	path := filepath.Join(c.dir, fmt.Sprintf(entryFilePattern, k))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("corrupt cache entry ignored")
		return nil
	}

	return &entry
}

// writeFile mirrors an entry to disk. Failures are logged, never returned.
func (c *Cache) writeFile(k string, entry Entry) {
	path := filepath.Join(c.dir, fmt.Sprintf(entryFilePattern, k))

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal cache entry")
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to write cache entry")
	}
}
