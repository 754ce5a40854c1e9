package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDeletedComments(t *testing.T) {
	doc, err := Scan("fn f() {}\n\n/// doc\n// one\nlet x = 1; /* two */\n", Rust, DefaultIgnoreMarker)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := deletedComments("src/lib.rs", doc)
	want := []DeletedComment{
		{File: "src/lib.rs", Line: 4, CommentRemoved: "// one"},
		{File: "src/lib.rs", Line: 5, CommentRemoved: "/* two */"},
	}
	if len(got) != len(want) {
		t.Fatalf("deletedComments() returned %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReportAddAndWrite(t *testing.T) {
	report := newReport("keep", false)
	report.add(fileResult{
		path:    "/repo/a.py",
		changed: true,
		deleted: []DeletedComment{{File: "a.py", Line: 3, CommentRemoved: "# x"}},
	})
	report.add(fileResult{path: "/repo/b.py"})

	if report.Files != 2 || report.ChangedFiles != 1 || report.RemovedComments != 1 {
		t.Errorf("report counts = %d/%d/%d, want 2/1/1", report.Files, report.ChangedFiles, report.RemovedComments)
	}

	path := filepath.Join(t.TempDir(), "out", "report.json")
	if err := report.write(path); err != nil {
		t.Fatalf("write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	for _, key := range []string{"runId", "generatedAt", "marker", "dryRun", "files", "changedFiles", "removedComments", "deleted"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("report JSON missing key %q", key)
		}
	}

	entries, ok := raw["deleted"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("deleted = %v, want one entry", raw["deleted"])
	}
	entry := entries[0].(map[string]any)
	if entry["file"] != "a.py" || entry["line"] != float64(3) || entry["commentRemoved"] != "# x" {
		t.Errorf("deleted entry = %v", entry)
	}
}

func TestNewReportHasEmptyDeletedList(t *testing.T) {
	data, err := json.Marshal(newReport(DefaultIgnoreMarker, true))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if entries, ok := raw["deleted"].([]any); !ok || len(entries) != 0 {
		t.Errorf("deleted = %v, want empty list", raw["deleted"])
	}
}
