package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DeletedComment records one comment removed from a file.
type DeletedComment struct {
	File           string `json:"file"`
	Line           int    `json:"line"`
	CommentRemoved string `json:"commentRemoved"`
}

// Report summarizes one run for the --report output.
type Report struct {
	RunID           string           `json:"runId"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	Marker          string           `json:"marker"`
	DryRun          bool             `json:"dryRun"`
	Files           int              `json:"files"`
	ChangedFiles    int              `json:"changedFiles"`
	RemovedComments int              `json:"removedComments"`
	Deleted         []DeletedComment `json:"deleted"`
}

func newReport(marker string, dryRun bool) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Marker:      marker,
		DryRun:      dryRun,
		Deleted:     []DeletedComment{},
	}
}

// deletedComments lists the comments Strip drops from doc, with the line
// each started on in the original text.
func deletedComments(file string, doc *Document) []DeletedComment {
	removed := doc.Removed()
	out := make([]DeletedComment, 0, len(removed))
	for _, span := range removed {
		line, _ := doc.Position(span.Start)
		out = append(out, DeletedComment{
			File:           file,
			Line:           line,
			CommentRemoved: span.Text,
		})
	}
	return out
}

func (r *Report) add(result fileResult) {
	r.Files++
	if result.changed {
		r.ChangedFiles++
	}
	r.RemovedComments += len(result.deleted)
	r.Deleted = append(r.Deleted, result.deleted...)
}

func (r *Report) write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
