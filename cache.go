package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

const cacheFileName = ".nocomms-cache.json"

// FileCache remembers the BLAKE3 hash of the stripped content last written
// for each file. A file whose current content hashes to the recorded value
// has nothing left to strip. Keys are relative to the git root so the
// cache survives the repository being moved.
//
// Settings fingerprints the options the entries were produced with; a
// cache written under different settings is discarded on load.
type FileCache struct {
	Settings   string            `json:"settings"`
	CleanFiles map[string]string `json:"clean_files"`

	root string
	path string
}

func contentHash(content []byte) string {
	h := blake3.Sum256(content)
	return hex.EncodeToString(h[:])
}

// cacheSettings fingerprints the options that decide what stripped output
// looks like.
func cacheSettings(marker string, lang Language) string {
	return contentHash([]byte(fmt.Sprintf("marker=%q language=%d", marker, lang)))
}

// loadCache reads the cache stored at gitRoot. A missing file, or one
// recorded under other settings, yields an empty cache.
func loadCache(gitRoot, settings string) (*FileCache, error) {
	cache := &FileCache{
		Settings:   settings,
		CleanFiles: make(map[string]string),
		root:       gitRoot,
		path:       filepath.Join(gitRoot, cacheFileName),
	}

	data, err := os.ReadFile(cache.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.CleanFiles == nil || cache.Settings != settings {
		cache.Settings = settings
		cache.CleanFiles = make(map[string]string)
	}

	return cache, nil
}

func (c *FileCache) save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

func (c *FileCache) key(filePath string) (string, error) {
	rel, err := filepath.Rel(c.root, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to make path relative: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// isClean reports whether content matches the last stripped output recorded
// for filePath.
func (c *FileCache) isClean(filePath string, content []byte) bool {
	key, err := c.key(filePath)
	if err != nil {
		return false
	}
	recorded, ok := c.CleanFiles[key]
	return ok && recorded == contentHash(content)
}

func (c *FileCache) markClean(filePath string, content []byte) error {
	key, err := c.key(filePath)
	if err != nil {
		return err
	}
	c.CleanFiles[key] = contentHash(content)
	return nil
}
