package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petrarca/file-summary/internal/detect"
	"github.com/petrarca/file-summary/internal/spec"
)

func TestBuildDetectResult(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"app.py", "util.py", "main.go"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	detector, err := detect.New(dir, detect.Options{})
	if err != nil {
		t.Fatal(err)
	}
	census, err := detector.Detect()
	if err != nil {
		t.Fatal(err)
	}

	result := buildDetectResult(dir, census)

	if result.Root != dir {
		t.Errorf("Root = %q, want %q", result.Root, dir)
	}
	if result.FormatVersion != spec.Version {
		t.Errorf("FormatVersion = %q, want %q", result.FormatVersion, spec.Version)
	}
	if result.FilesSeen != 3 {
		t.Errorf("FilesSeen = %d, want 3", result.FilesSeen)
	}
	if result.Truncated {
		t.Error("Truncated = true for a tree under the limit")
	}

	counts := make(map[string]int)
	for _, lang := range result.Languages {
		counts[lang.Language] = lang.Files
	}
	if counts["Python"] != 2 || counts["Go"] != 1 {
		t.Errorf("language counts = %v, want Python:2 Go:1", counts)
	}

	patterns := strings.Join(result.IncludePatterns, ",")
	if !strings.Contains(patterns, "*.py") || !strings.Contains(patterns, "*.go") {
		t.Errorf("include patterns = %v, want *.py and *.go", result.IncludePatterns)
	}

	// Plain temp dirs are not git checkouts.
	if result.Git != nil {
		t.Errorf("Git = %+v, want nil", result.Git)
	}
}

func TestDetectResultToText(t *testing.T) {
	result := &DetectResult{
		Root:      "/repo",
		FilesSeen: 42,
		Truncated: true,
		Languages: []LanguageCount{
			{Language: "Go", Files: 30},
			{Language: "Python", Files: 12},
		},
		IncludePatterns: []string{"*.go", "*.py"},
	}

	var buf bytes.Buffer
	result.ToText(&buf)
	out := buf.String()

	if !strings.Contains(out, "Root: /repo") {
		t.Error("text output missing root line")
	}
	if !strings.Contains(out, "Files seen: 42 (truncated)") {
		t.Error("text output missing truncated file count")
	}
	if !strings.Contains(out, "Include patterns: *.go, *.py") {
		t.Error("text output missing include patterns")
	}
	if strings.Contains(out, "Git:") {
		t.Error("text output shows git line without git info")
	}
}
