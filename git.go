package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// findGitRoot walks up from dir until it finds a directory containing .git.
func findGitRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a git repository")
		}
		dir = parent
	}
}

// isGitIgnored reports whether git's ignore rules exclude filePath.
// check-ignore exits 0 for ignored paths and 1 otherwise; outside a
// repository it fails, which also reads as "not ignored".
func isGitIgnored(filePath string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", filePath)
	cmd.Dir = filepath.Dir(filePath)
	return cmd.Run() == nil
}

// getStagedFiles lists the paths in the git index that differ from HEAD,
// resolved against the repository root.
func getStagedFiles(gitRoot string) ([]string, error) {
	cmd := exec.Command("git", "diff", "--staged", "--name-only", "--diff-filter=ACMR")
	cmd.Dir = gitRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get staged files: %w", err)
	}

	var files []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, filepath.Join(gitRoot, line))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no staged files found")
	}

	return files, nil
}
