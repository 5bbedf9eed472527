package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/petrarca/file-summary/internal/classify"
	"github.com/petrarca/file-summary/internal/progress"
	"github.com/petrarca/file-summary/internal/scanner"
)

// Fixed artifact names inside the output directory.
const (
	MarkdownFileName = "file-summaries.md"
	JSONFileName     = "file-summaries.json"
)

// Options controls a Generate call. The scanner call threads include
// patterns and excluded directory names only; file-level exclude patterns
// exist on the scanner API but are not exposed here.
type Options struct {
	IncludePatterns []string
	ExcludeDirs     []string
	DryRun          bool
	Progress        *progress.Progress
}

// Entry is one catalogued file.
type Entry struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Summary  string `json:"summary"`
}

// Document is the layout of the JSON artifact.
type Document struct {
	TotalFiles int     `json:"total_files"`
	Files      []Entry `json:"files"`
}

// Artifact describes one produced or previewed output file.
type Artifact struct {
	Path    string
	Size    int
	Entries int
}

// Result summarizes what Generate did. Markdown and JSON are nil when the
// match set was empty: nothing is written in that case.
type Result struct {
	TotalFiles int
	DryRun     bool
	Markdown   *Artifact
	JSON       *Artifact
}

// Generate scans root, classifies every matching file, and writes
// file-summaries.md and file-summaries.json into outputDir. The output
// directory must already exist. In dry-run mode the artifacts are rendered
// but not written. Any failure comes back as *Error.
func Generate(root, outputDir string, opts Options) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, wrap(fmt.Errorf("failed to resolve root %s: %w", root, err))
	}

	prog := opts.Progress
	if prog == nil {
		prog = progress.Discard()
	}

	sc, err := scanner.NewScannerWithProgress(absRoot, scanner.Filters{
		IncludePatterns: opts.IncludePatterns,
		ExcludeDirs:     opts.ExcludeDirs,
	}, prog)
	if err != nil {
		return nil, wrap(err)
	}

	files, err := sc.Scan()
	if err != nil {
		return nil, wrap(err)
	}

	result := &Result{TotalFiles: len(files), DryRun: opts.DryRun}

	if len(files) == 0 {
		slog.Info("No files found matching criteria", "root", absRoot, "dry_run", opts.DryRun)
		return result, nil
	}

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		entries = append(entries, Entry{
			Path:     file.RelPath,
			Language: classify.DetectLanguage(file.Path),
			Summary:  classify.Summarize(file.Path, absRoot),
		})
	}

	markdown := renderMarkdown(entries)
	jsonData, err := json.MarshalIndent(Document{
		TotalFiles: len(entries),
		Files:      entries,
	}, "", "  ")
	if err != nil {
		return nil, wrap(err)
	}

	markdownPath := filepath.Join(outputDir, MarkdownFileName)
	jsonPath := filepath.Join(outputDir, JSONFileName)

	// Both artifacts are rendered before either write so a failure cannot
	// leave one current and the other stale.
	if !opts.DryRun {
		prog.FileWriting(markdownPath)
		if err := os.WriteFile(markdownPath, []byte(markdown), 0o644); err != nil {
			return nil, wrap(err)
		}
		prog.FileWritten(markdownPath)

		prog.FileWriting(jsonPath)
		if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
			return nil, wrap(err)
		}
		prog.FileWritten(jsonPath)
	}

	result.Markdown = &Artifact{Path: markdownPath, Size: len(markdown), Entries: len(entries)}
	result.JSON = &Artifact{Path: jsonPath, Size: len(jsonData), Entries: len(entries)}

	slog.Debug("Generated file summaries",
		"files", len(entries),
		"markdown", markdownPath,
		"json", jsonPath,
		"dry_run", opts.DryRun)

	return result, nil
}

// renderMarkdown produces the text artifact. The layout is stable: heading,
// description, total count, then one section per file with a two-space line
// break after the language label.
func renderMarkdown(entries []Entry) string {
	lines := []string{"# File Summaries\n"}
	lines = append(lines, "Heuristic summaries of source files based on filenames, extensions, and paths.\n")
	lines = append(lines, fmt.Sprintf("Total files: %d\n", len(entries)))

	for _, entry := range entries {
		lines = append(lines, "## "+entry.Path)
		lines = append(lines, fmt.Sprintf("**Language:** %s  ", entry.Language))
		lines = append(lines, fmt.Sprintf("**Summary:** %s\n", entry.Summary))
	}

	return strings.Join(lines, "\n")
}
