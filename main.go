// Command nocomms removes comments from source files. String literals, doc
// comments and comments carrying the ignore marker are left untouched.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

const version = "0.2.0"

// CLI defines the command-line interface for nocomms.
type CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (${enum})"`

	Strip   StripCmd   `cmd:"" default:"withargs" help:"Remove comments from files and directories"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// StripCmd strips comments from the given paths, or from the git index
// with --staged.
type StripCmd struct {
	Paths []string `arg:"" optional:"" type:"path" help:"Files or directories to process"`

	Language  string `short:"l" default:"auto" enum:"auto,python,rust,go,javascript,terraform,yaml" help:"Source language; auto picks by file extension"`
	Marker    string `short:"m" default:"${default_marker}" help:"Comments containing this text are kept"`
	Staged    bool   `help:"Process only staged files from git"`
	DryRun    bool   `name:"dry-run" short:"n" help:"Report what would be removed without writing anything"`
	Output    string `short:"o" type:"path" help:"Write stripped copies under this directory instead of in place"`
	Stdout    bool   `help:"Write the stripped text of a single file to stdout"`
	Report    string `type:"path" help:"Write a JSON report of removed comments to this file"`
	Force     bool   `short:"f" help:"Process files even if the cache says they are clean"`
	NoCache   bool   `name:"no-cache" help:"Neither read nor update the cache"`
	CacheOnly bool   `name:"cache-only" help:"Mark files as clean in the cache without stripping them"`
	BatchSize int    `name:"batch-size" default:"24" help:"Number of files to process in parallel per batch"`
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("nocomms version %s\n", version)
	return nil
}

func (c *StripCmd) Run(logger *slog.Logger) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	_, err = run(cfg, logger, os.Stdout)
	return err
}

// config validates the flags and resolves the file list.
func (c *StripCmd) config() (Config, error) {
	cfg := Config{
		Marker:     c.Marker,
		DryRun:     c.DryRun,
		OutputDir:  c.Output,
		Stdout:     c.Stdout,
		ReportPath: c.Report,
		Force:      c.Force,
		UseCache:   !c.NoCache,
		CacheOnly:  c.CacheOnly,
		BatchSize:  c.BatchSize,
	}

	if c.Language != "auto" {
		lang, err := ParseLanguage(c.Language)
		if err != nil {
			return cfg, err
		}
		cfg.Language = lang
	}

	if cfg.BatchSize < 1 {
		return cfg, fmt.Errorf("--batch-size must be at least 1, got %d", cfg.BatchSize)
	}
	if cfg.Stdout && cfg.OutputDir != "" {
		return cfg, errors.New("--stdout and --output cannot be combined")
	}
	if cfg.CacheOnly && !cfg.UseCache {
		return cfg, errors.New("--cache-only and --no-cache cannot be combined")
	}

	wd, err := os.Getwd()
	if err != nil {
		return cfg, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg.BaseDir = wd

	paths := c.Paths
	switch {
	case c.Staged && len(paths) > 0:
		return cfg, errors.New("--staged cannot be combined with explicit paths")
	case c.Staged:
		gitRoot, err := findGitRoot(wd)
		if err != nil {
			return cfg, err
		}
		if paths, err = getStagedFiles(gitRoot); err != nil {
			return cfg, err
		}
	case len(paths) == 0:
		return cfg, errors.New("no files provided; use --staged or pass file paths")
	}

	if cfg.Files, err = collectFiles(paths); err != nil {
		return cfg, err
	}
	if cfg.Stdout && len(cfg.Files) != 1 {
		return cfg, fmt.Errorf("--stdout needs exactly one file, got %d", len(cfg.Files))
	}

	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("nocomms"),
		kong.Description("Remove comments from source files, keeping strings, doc comments and marked comments."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(kong.JSON, ".nocomms.json", "~/.config/nocomms/config.json"),
		kong.Vars{"default_marker": DefaultIgnoreMarker},
	)

	logger, err := newLogger(os.Stderr, cli.LogLevel, cli.LogFormat)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
