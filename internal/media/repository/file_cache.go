package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
)

// FileCache keeps the whole record set in one JSON file. Freshness is the
// file modification time. Writes replace the file; the last writer wins.
type FileCache struct {
	path string
	now  func() time.Time
}

// NewFileCache creates a cache backed by path
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path, now: time.Now}
}

// WithClock replaces the time source, for tests
func (c *FileCache) WithClock(now func() time.Time) *FileCache {
	c.now = now
	return c
}

// Path returns the cache file location
func (c *FileCache) Path() string {
	return c.path
}

// ReadAll returns the cached records. A missing or corrupt file reads as empty.
func (c *FileCache) ReadAll(_ context.Context) domain.Records {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[cache] read %s failed, treating as empty: %v", c.path, err)
		}
		return domain.Records{}
	}

	records, err := decodeRecords(data)
	if err != nil {
		log.Printf("[cache] %s is corrupt, treating as empty: %v", c.path, err)
		return domain.Records{}
	}
	return records
}

// WriteAll replaces the cache file with records
func (c *FileCache) WriteAll(_ context.Context, records domain.Records) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

// LastModified returns the cache file modification time, if the file exists
func (c *FileCache) LastModified(_ context.Context) (time.Time, bool) {
	info, err := os.Stat(c.path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// IsStale reports whether the cache is at least threshold old. A missing file is stale.
func (c *FileCache) IsStale(ctx context.Context, threshold time.Duration) bool {
	modified, ok := c.LastModified(ctx)
	if !ok {
		return true
	}
	return c.now().Sub(modified) >= threshold
}
