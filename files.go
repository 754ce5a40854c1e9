package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"__pycache__":  true,
}

var excludedSuffixes = []string{
	".lock", ".gitignore",
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".pdf",
	".woff", ".woff2", ".ttf", ".eot",
	".zip", ".tar", ".gz", ".exe", ".bin",
}

// isExcludedFile reports system, binary and media files that are never scanned.
func isExcludedFile(path string) bool {
	base := filepath.Base(path)
	if base == ".DS_Store" || base == cacheFileName {
		return true
	}
	lower := strings.ToLower(base)
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// collectFiles expands paths into absolute file paths. Directories are
// walked recursively; explicitly named files are always kept so the caller
// can report them as unsupported.
func collectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", p, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != abs && (skippedDirs[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || isExcludedFile(path) {
				return nil
			}
			if _, err := languageForPath(path); err != nil {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	return files, nil
}
