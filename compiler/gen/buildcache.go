package gen

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// BuildCache is a sqlite-backed path→content-hash store used to skip
// rewriting files whose content did not change between generation runs. It is
// an optimization only: a missing or stale cache never affects output
// content, just which files get rewritten.
type BuildCache struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenBuildCache opens (or creates) a cache database at path.
func OpenBuildCache(path string) (*BuildCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("buildcache: open %s: %w", path, err)
	}
	c := &BuildCache{db: db}
	if err := c.init(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// NewBuildCache wraps an existing database handle, used by tests.
func NewBuildCache(db *sql.DB) *BuildCache {
	return &BuildCache{db: db}
}

func (c *BuildCache) init() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("buildcache: init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *BuildCache) Close() error {
	return c.db.Close()
}

// Unchanged reports whether the recorded hash for path matches the content.
func (c *BuildCache) Unchanged(path, content string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var stored string
	err := c.db.QueryRow(`SELECT hash FROM files WHERE path = ?`, path).Scan(&stored)
	if err != nil {
		return false
	}
	return stored == hashContent(content)
}

// Record stores the content hash for path.
func (c *BuildCache) Record(path, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.Exec(
		`INSERT INTO files (path, hash) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash`,
		path, hashContent(content),
	)
	if err != nil {
		return fmt.Errorf("buildcache: record %s: %w", path, err)
	}
	return nil
}

// Forget removes the record for path.
func (c *BuildCache) Forget(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.db.Exec(`DELETE FROM files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("buildcache: forget %s: %w", path, err)
	}
	return nil
}

func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
