package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindGitRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("os.Mkdir() error = %v", err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("os.MkdirAll() error = %v", err)
	}

	for _, dir := range []string{root, sub} {
		got, err := findGitRoot(dir)
		if err != nil {
			t.Fatalf("findGitRoot(%s) error = %v", dir, err)
		}
		if got != root {
			t.Errorf("findGitRoot(%s) = %q, want %q", dir, got, root)
		}
	}
}

func TestFindGitRootIgnoresGitFile(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("os.Mkdir() error = %v", err)
	}
	inner := filepath.Join(root, "inner")
	writeFile(t, filepath.Join(inner, ".git"), "gitdir: elsewhere\n")

	got, err := findGitRoot(inner)
	if err != nil {
		t.Fatalf("findGitRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("findGitRoot() = %q, want %q", got, root)
	}
}
