package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/petrarca/file-summary/internal/detect"
	"github.com/petrarca/file-summary/internal/git"
	"github.com/petrarca/file-summary/internal/spec"
	"github.com/spf13/cobra"
)

var (
	detectFormat  string
	detectOutput  string
	detectLimit   int
	detectExclude []string
)

var detectCmd = &cobra.Command{
	Use:   "detect [path]",
	Short: "Detect which languages a repository contains",
	Long: `Detect samples the repository tree and reports per-language file counts.
The walk skips symlinks, honors glob exclude patterns, and stops after a
bounded number of files so it stays fast on large checkouts.

The same census drives language auto-detection during scans; detect exposes
it directly, together with repository metadata when the path is a git
checkout.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	setupOutputFlags(detectCmd, &detectFormat, &detectOutput)
	detectCmd.Flags().IntVar(&detectLimit, "limit", detect.DefaultLimit, "Maximum number of files to sample")
	detectCmd.Flags().StringSliceVar(&detectExclude, "exclude", nil, "Glob patterns to exclude (matched against relative path and name)")
}

// LanguageCount is one census row.
type LanguageCount struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
}

// DetectResult is the output of the detect command.
type DetectResult struct {
	Root            string          `json:"root"`
	FormatVersion   string          `json:"format_version"`
	FilesSeen       int             `json:"files_seen"`
	Truncated       bool            `json:"truncated"`
	Languages       []LanguageCount `json:"languages"`
	IncludePatterns []string        `json:"include_patterns,omitempty"`
	Git             *git.Info       `json:"git,omitempty"`
}

func (r *DetectResult) ToJSON() interface{} {
	return r
}

func (r *DetectResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "Root: %s\n", r.Root)
	if r.Git != nil {
		dirty := ""
		if r.Git.IsDirty {
			dirty = " (dirty)"
		}
		fmt.Fprintf(w, "Git:  %s @ %s%s\n", r.Git.Branch, r.Git.Commit, dirty)
	}
	fmt.Fprintln(w)

	for _, lang := range r.Languages {
		fmt.Fprintf(w, "%-20s %d\n", lang.Language, lang.Files)
	}

	truncated := ""
	if r.Truncated {
		truncated = " (truncated)"
	}
	fmt.Fprintf(w, "\nFiles seen: %d%s\n", r.FilesSeen, truncated)
	if len(r.IncludePatterns) > 0 {
		fmt.Fprintf(w, "Include patterns: %s\n", strings.Join(r.IncludePatterns, ", "))
	}
}

func runDetect(cmd *cobra.Command, args []string) {
	path := "."
	if len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		slog.Error("Invalid path", "error", err)
		os.Exit(1)
	}

	detector, err := detect.New(absPath, detect.Options{
		ExcludePatterns: detectExclude,
		Limit:           detectLimit,
	})
	if err != nil {
		slog.Error("Failed to create detector", "error", err)
		os.Exit(1)
	}

	census, err := detector.Detect()
	if err != nil {
		slog.Error("Failed to detect languages", "error", err)
		os.Exit(1)
	}

	OutputToFile(buildDetectResult(absPath, census), detectFormat, detectOutput)
}

func buildDetectResult(root string, census *detect.Census) *DetectResult {
	languages := census.Languages()
	counts := make([]LanguageCount, 0, len(languages))
	for _, lang := range languages {
		counts = append(counts, LanguageCount{Language: lang, Files: census.Counts[lang]})
	}

	return &DetectResult{
		Root:            root,
		FormatVersion:   spec.Version,
		FilesSeen:       census.FilesSeen,
		Truncated:       census.Truncated,
		Languages:       counts,
		IncludePatterns: detect.IncludePatterns(languages),
		Git:             git.Get(root),
	}
}
