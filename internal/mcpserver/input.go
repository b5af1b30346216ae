package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/schema"
)

// schemaInput represents the two ways a parameter schema document can be
// provided to a tool. Exactly one of File or Content must be set.
type schemaInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a parameter schema document (YAML or JSON) on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline parameter schema document (YAML or JSON)"`
}

// cacheEntry holds built definitions with LRU ordering and TTL expiry.
// Definitions are immutable, so one entry can serve concurrent calls.
type cacheEntry struct {
	defs      []*param.Definition
	insertAt  time.Time
	expiresAt time.Time
}

// schemaCacheStore provides a session-scoped cache for built schemas.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash.
type schemaCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var schemaCache = &schemaCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns cached definitions or nil. Expired entries are lazily removed.
func (c *schemaCacheStore) get(key string) []*param.Definition {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.defs
	}
	return nil
}

// putWithTTL stores definitions, evicting the least recently used entry if at capacity.
func (c *schemaCacheStore) putWithTTL(key string, defs []*param.Definition, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{defs: defs, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *schemaCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper. It stops when ctx
// is cancelled.
func (c *schemaCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *schemaCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *schemaCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given schema input, or "" when
// the input cannot be cached.
func makeCacheKey(s schemaInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	}
	return ""
}

// resolve loads and builds the schema from whichever input was provided,
// using the cache when enabled.
func (s schemaInput) resolve() ([]*param.Definition, error) {
	if (s.File == "") == (s.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set PARAMPREP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := schemaCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var doc *schema.Document
	var err error
	if s.File != "" {
		doc, err = schema.ParseFile(s.File)
	} else {
		doc, err = schema.Parse([]byte(s.Content))
	}
	if err != nil {
		return nil, err
	}
	defs, err := doc.Build()
	if err != nil {
		return nil, err
	}

	if key != "" {
		schemaCache.putWithTTL(key, defs, ttl)
	}
	return defs, nil
}
