package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/petrarca/file-summary/internal/classify"
	"github.com/petrarca/file-summary/internal/detect"
	"github.com/spf13/cobra"
)

var languagesFormat string
var languagesOutput string

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the extension to language table",
	Long: `List every language the catalogue can label, with the file extensions that
map to it. Detect-only entries are sampled during language detection but
their files are reported as Unknown in the catalogue.`,
	Run: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	setupOutputFlags(languagesCmd, &languagesFormat, &languagesOutput)
}

// LanguageInfo holds one language and the extensions mapped to it.
type LanguageInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	DetectOnly bool     `json:"detect_only,omitempty"`
}

// LanguagesResult is the output for the languages command.
type LanguagesResult struct {
	Languages []LanguageInfo `json:"languages"`
	Total     int            `json:"total"`
}

func (r *LanguagesResult) ToJSON() interface{} {
	return r
}

func (r *LanguagesResult) ToText(w io.Writer) {
	for _, lang := range r.Languages {
		marker := ""
		if lang.DetectOnly {
			marker = " (detect only)"
		}
		fmt.Fprintf(w, "%-20s %v%s\n", lang.Name, lang.Extensions, marker)
	}
	fmt.Fprintf(w, "\nTotal: %d languages\n", r.Total)
}

func runLanguages(cmd *cobra.Command, args []string) {
	OutputToFile(buildLanguagesResult(), languagesFormat, languagesOutput)
}

func buildLanguagesResult() *LanguagesResult {
	byLanguage := make(map[string][]string)
	for ext, lang := range classify.Extensions() {
		byLanguage[lang] = append(byLanguage[lang], ext)
	}

	detectOnly := make(map[string]bool)
	for ext, lang := range detect.ExtraExtensions {
		if _, ok := byLanguage[lang]; !ok {
			detectOnly[lang] = true
		}
		byLanguage[lang] = append(byLanguage[lang], ext)
	}

	languages := make([]LanguageInfo, 0, len(byLanguage))
	for lang, exts := range byLanguage {
		sort.Strings(exts)
		languages = append(languages, LanguageInfo{
			Name:       lang,
			Extensions: exts,
			DetectOnly: detectOnly[lang],
		})
	}

	// Sort by name
	sort.Slice(languages, func(i, j int) bool {
		return languages[i].Name < languages[j].Name
	})

	return &LanguagesResult{
		Languages: languages,
		Total:     len(languages),
	}
}
