package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config is the resolved configuration for one run.
type Config struct {
	Files      []string
	Language   Language // zero means pick by extension
	Marker     string
	DryRun     bool
	OutputDir  string
	BaseDir    string
	Stdout     bool
	ReportPath string
	Force      bool
	UseCache   bool
	CacheOnly  bool // record files as clean without stripping them
	BatchSize  int
}

// writesInPlace reports whether stripped output replaces the source files.
func (c Config) writesInPlace() bool {
	return !c.DryRun && !c.Stdout && c.OutputDir == ""
}

type fileResult struct {
	path     string
	stripped string
	changed  bool
	cached   bool
	deleted  []DeletedComment
}

// run processes cfg.Files and returns the report for the run. Per-file
// failures are logged and counted; run fails only when nothing could be
// processed at all. Files are only rewritten in place inside a git
// repository.
func run(cfg Config, logger *slog.Logger, stdout io.Writer) (*Report, error) {
	var cache *FileCache
	if cfg.writesInPlace() || cfg.CacheOnly {
		gitRoot, err := findGitRoot(cfg.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("git repository required to modify files in place (use --dry-run, --output or --stdout): %w", err)
		}
		if cfg.UseCache || cfg.CacheOnly {
			cache = openCache(gitRoot, cfg, logger)
		}
	}

	if cfg.CacheOnly {
		return cacheFiles(cfg, cache, logger)
	}

	report := newReport(cfg.Marker, cfg.DryRun)

	pending := make([]string, 0, len(cfg.Files))
	skipped := 0
	for _, file := range cfg.Files {
		if isGitIgnored(file) {
			logger.Info("skipping gitignored file", "file", cfg.displayPath(file))
			skipped++
			continue
		}
		pending = append(pending, file)
	}

	failed := 0
	for i := 0; i < len(pending); i += cfg.BatchSize {
		end := min(i+cfg.BatchSize, len(pending))
		batch := pending[i:end]

		logger.Debug("processing batch",
			"batch", (i/cfg.BatchSize)+1,
			"batches", (len(pending)+cfg.BatchSize-1)/cfg.BatchSize,
			"files", len(batch))

		results, errs := processBatch(batch, cfg, cache)

		for j, result := range results {
			file := batch[j]
			if err := errs[j]; err != nil {
				var unsupported *UnsupportedFileTypeError
				if errors.As(err, &unsupported) {
					logger.Info("skipping unsupported file", "file", cfg.displayPath(file), "extension", unsupported.Extension)
					skipped++
					continue
				}
				logger.Warn("failed to process file", "file", cfg.displayPath(file), "error", err)
				failed++
				continue
			}

			if result.cached {
				logger.Info("skipping unchanged file", "file", cfg.displayPath(file))
				skipped++
				continue
			}

			report.add(result)
			logResult(logger, cfg, result)

			if cfg.Stdout {
				if _, err := io.WriteString(stdout, result.stripped); err != nil {
					return report, fmt.Errorf("failed to write output: %w", err)
				}
			}

			if cache != nil {
				if err := cache.markClean(file, []byte(result.stripped)); err != nil {
					logger.Warn("failed to update cache", "file", cfg.displayPath(file), "error", err)
				}
			}
		}

		// The cache is saved after every batch so an interrupted run keeps
		// the progress it made.
		if cache != nil {
			if err := cache.save(); err != nil {
				logger.Warn("failed to save cache", "error", err)
			}
		}
	}

	logger.Info("comment removal complete",
		"processed", report.Files,
		"changed", report.ChangedFiles,
		"removed", report.RemovedComments,
		"skipped", skipped,
		"failed", failed,
		"dry_run", cfg.DryRun)

	if cfg.ReportPath != "" {
		if err := report.write(cfg.ReportPath); err != nil {
			return report, err
		}
		logger.Info("wrote report", "path", cfg.ReportPath, "run_id", report.RunID)
	}

	if report.Files == 0 && skipped == 0 && failed > 0 {
		return report, errors.New("no files were successfully processed")
	}

	return report, nil
}

func logResult(logger *slog.Logger, cfg Config, result fileResult) {
	file := cfg.displayPath(result.path)
	for _, d := range result.deleted {
		logger.Debug("comment", "file", file, "line", d.Line, "text", d.CommentRemoved)
	}

	switch {
	case !result.changed:
		logger.Debug("no comments to remove", "file", file)
	case cfg.DryRun:
		logger.Info("would remove comments", "file", file, "count", len(result.deleted))
	default:
		logger.Info("removed comments", "file", file, "count", len(result.deleted))
	}
}

func openCache(gitRoot string, cfg Config, logger *slog.Logger) *FileCache {
	cache, err := loadCache(gitRoot, cacheSettings(cfg.Marker, cfg.Language))
	if err != nil {
		logger.Warn("cache disabled", "error", err)
		return nil
	}
	return cache
}

// cacheFiles records every file's current content as clean without
// stripping it, so existing comments are left for later runs to skip.
func cacheFiles(cfg Config, cache *FileCache, logger *slog.Logger) (*Report, error) {
	if cache == nil {
		return nil, errors.New("cache-only mode needs a readable cache")
	}

	report := newReport(cfg.Marker, cfg.DryRun)
	cached := 0
	for _, file := range cfg.Files {
		if isGitIgnored(file) {
			logger.Info("skipping gitignored file", "file", cfg.displayPath(file))
			continue
		}
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("failed to read file", "file", cfg.displayPath(file), "error", err)
			continue
		}
		if err := cache.markClean(file, content); err != nil {
			logger.Warn("failed to update cache", "file", cfg.displayPath(file), "error", err)
			continue
		}
		logger.Debug("cached", "file", cfg.displayPath(file))
		cached++
	}

	if err := cache.save(); err != nil {
		return report, err
	}
	logger.Info("marked files as clean", "cached", cached)
	return report, nil
}

// processBatch strips every file of the batch in parallel and waits for all
// of them. Results and errors are indexed like files.
func processBatch(files []string, cfg Config, cache *FileCache) ([]fileResult, []error) {
	results := make([]fileResult, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, f string) {
			defer wg.Done()
			results[i], errs[i] = processFile(f, cfg, cache)
		}(i, file)
	}
	wg.Wait()

	return results, errs
}

// processFile strips one file and writes the result where cfg says. The
// cache is only read here; updates happen once the batch is done.
func processFile(path string, cfg Config, cache *FileCache) (fileResult, error) {
	result := fileResult{path: path}

	lang := cfg.Language
	if lang == 0 {
		var err error
		if lang, err = languageForPath(path); err != nil {
			return result, err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return result, fmt.Errorf("failed to stat file: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to read file: %w", err)
	}

	if cache != nil && !cfg.Force && cache.isClean(path, content) {
		result.cached = true
		return result, nil
	}

	stripped, doc, err := StripSource(string(content), lang, cfg.Marker)
	if err != nil {
		return result, err
	}

	result.stripped = stripped
	result.changed = stripped != string(content)
	result.deleted = deletedComments(cfg.displayPath(path), doc)

	if !result.changed || cfg.DryRun || cfg.Stdout {
		return result, nil
	}

	target := path
	if cfg.OutputDir != "" {
		target = filepath.Join(cfg.OutputDir, cfg.relativePath(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return result, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(target, []byte(stripped), info.Mode().Perm()); err != nil {
		return result, fmt.Errorf("failed to write file: %w", err)
	}

	return result, nil
}

// relativePath maps path below BaseDir for mirroring into OutputDir. Files
// outside BaseDir keep only their base name.
func (c Config) relativePath(path string) string {
	if c.BaseDir != "" {
		if rel, err := filepath.Rel(c.BaseDir, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return rel
		}
	}
	return filepath.Base(path)
}

func (c Config) displayPath(path string) string {
	return filepath.ToSlash(c.relativePath(path))
}
