package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "file-summary",
	Short: "Deterministic file catalogue for repositories",
	Long: `File Summary walks a repository and catalogues its files: one language
label and one heuristic description per file, derived from names, extensions
and paths alone. File content is never read, so the same tree always produces
byte-identical reports.

It writes two artifacts into the output directory: file-summaries.md for
people and file-summaries.json for tooling.`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
