package classify

import (
	"path/filepath"
	"strings"

	"github.com/petrarca/file-summary/internal/util"
)

// Unknown is returned for extensions without a table entry.
const Unknown = "Unknown"

// languageByExt maps lower-cased file extensions to language labels. The
// table is fixed: lookups never fall back to content inspection.
var languageByExt = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".jsx":   "JavaScript",
	".java":  "Java",
	".go":    "Go",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".c":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".h":     "C/C++",
	".hpp":   "C++",
	".cs":    "C#",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".sh":    "Shell",
	".bash":  "Bash",
	".zsh":   "Zsh",
	".ps1":   "PowerShell",
	".r":     "R",
	".m":     "Objective-C",
	".sql":   "SQL",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "SCSS",
	".sass":  "Sass",
	".less":  "Less",
	".vue":   "Vue",
	".md":    "Markdown",
	".rst":   "reStructuredText",
	".yml":   "YAML",
	".yaml":  "YAML",
	".json":  "JSON",
	".xml":   "XML",
	".toml":  "TOML",
	".ini":   "INI",
	".cfg":   "Config",
	".conf":  "Config",
}

// DetectLanguage returns the language label for a path. The extension is
// taken from the final path component and compared case-insensitively;
// unmapped and missing extensions yield Unknown. The function is total and
// never inspects file content.
func DetectLanguage(path string) string {
	_, ext := util.SplitExt(filepath.Base(path))
	return LanguageForExt(strings.ToLower(ext))
}

// LanguageForExt looks up an already-extracted extension, lower-cased and
// including the leading dot.
func LanguageForExt(ext string) string {
	if lang, ok := languageByExt[ext]; ok {
		return lang
	}
	return Unknown
}

// Extensions returns a copy of the extension table keyed by extension.
func Extensions() map[string]string {
	m := make(map[string]string, len(languageByExt))
	for ext, lang := range languageByExt {
		m[ext] = lang
	}
	return m
}
