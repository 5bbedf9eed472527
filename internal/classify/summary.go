package classify

import (
	"path/filepath"
	"strings"

	"github.com/petrarca/file-summary/internal/util"
)

// Summarize builds a one-line description of a file from its name, extension
// and location under root. The rules form a fixed priority chain: the first
// match wins, so a name like api_test.py reads as a test file, not as API
// code. The function is pure and never reads file content.
func Summarize(path, root string) string {
	name := filepath.Base(path)
	stem, ext := util.SplitExt(name)
	ext = strings.ToLower(ext)
	stemLower := strings.ToLower(stem)
	language := LanguageForExt(ext)
	dirParts := relativeDirParts(path, root)

	switch stemLower {
	case "config", "configuration", "settings":
		return language + " configuration file"
	}

	if strings.HasPrefix(stemLower, "test_") || strings.HasSuffix(stemLower, "_test") || strings.HasPrefix(stemLower, "test") {
		return language + " test file"
	}

	switch stemLower {
	case "main", "index", "app", "__main__":
		return language + " main entry point"
	case "cli", "command", "commands":
		return language + " command-line interface"
	case "utils", "util", "utilities", "helpers", "helper":
		return language + " utility functions"
	case "model", "models", "schema", "schemas":
		return language + " data models"
	case "controller", "controllers", "handler", "handlers":
		return language + " request handlers"
	case "view", "views", "template", "templates":
		return language + " view templates"
	case "service", "services":
		return language + " service layer"
	case "repository", "repositories", "dao":
		return language + " data access layer"
	}

	if strings.Contains(stemLower, "api") {
		return language + " API implementation"
	}
	if strings.Contains(stemLower, "db") || strings.Contains(stemLower, "database") {
		return language + " database operations"
	}
	if strings.Contains(stemLower, "router") || strings.Contains(stemLower, "routes") {
		return language + " routing configuration"
	}
	if strings.Contains(stemLower, "middleware") {
		return language + " middleware component"
	}
	if ext == ".jsx" || ext == ".tsx" || ext == ".vue" || strings.Contains(stemLower, "component") {
		return language + " UI component"
	}

	// Directory parts are compared verbatim here, unlike the top-dir rules
	// below which fold case.
	switch stemLower {
	case "__init__", "index", "mod":
		if containsPart(dirParts, "tests") || containsPart(dirParts, "test") {
			return language + " test module initialization"
		}
		return language + " module initialization"
	}

	if len(dirParts) > 0 {
		switch strings.ToLower(dirParts[0]) {
		case "tests", "test":
			return language + " test implementation"
		case "src", "lib", "core":
			return language + " core implementation"
		case "scripts", "bin":
			return language + " utility script"
		case "docs", "documentation":
			return language + " documentation file"
		case "examples", "demos", "samples":
			return language + " example code"
		}
	}

	words := strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	if language != Unknown {
		return language + " module for " + words
	}
	return "Source file for " + words
}

// relativeDirParts returns the directory components strictly between root
// and the file. Files directly under root, and files outside it, yield nil.
func relativeDirParts(path, root string) []string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	dir := filepath.Dir(rel)
	if dir == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(dir), "/")
}

func containsPart(parts []string, want string) bool {
	for _, part := range parts {
		if part == want {
			return true
		}
	}
	return false
}
