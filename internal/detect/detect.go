package detect

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/petrarca/file-summary/internal/classify"
	"github.com/petrarca/file-summary/internal/provider"
	"github.com/petrarca/file-summary/internal/types"
	"github.com/petrarca/file-summary/internal/util"
)

// DefaultLimit bounds how many files a census inspects. Language detection
// needs a sample, not the whole tree.
const DefaultLimit = 1000

// ExtraExtensions are recognized by the repository census but have no entry
// in the catalogue's language table.
var ExtraExtensions = map[string]string{
	".s":   "ASM",
	".asm": "ASM",
	".pl":  "Perl",
	".pm":  "Perl",
}

var errLimitReached = errors.New("file limit reached")

// Census holds per-language file counts from a bounded repository walk.
type Census struct {
	Counts    map[string]int
	FilesSeen int
	Truncated bool
}

// Languages returns the detected language names in sorted order.
func (c *Census) Languages() []string {
	languages := make([]string, 0, len(c.Counts))
	for lang := range c.Counts {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

// Options controls a census run. Exclude patterns use full glob syntax and
// match both the path relative to the root and the bare name.
type Options struct {
	ExcludePatterns []string
	Limit           int // <= 0 means DefaultLimit
}

// Detector samples a repository to find which languages it contains.
type Detector struct {
	provider types.Provider
	opts     Options
}

// New creates a detector rooted at path on the local file system.
func New(path string, opts Options) (*Detector, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	return NewWithProvider(provider.NewFSProvider(absPath), opts), nil
}

// NewWithProvider creates a detector on top of an arbitrary provider.
func NewWithProvider(p types.Provider, opts Options) *Detector {
	return &Detector{provider: p, opts: opts}
}

// Detect walks the tree, counting files per language until the limit is hit.
// Symlinks are skipped, never followed. Files whose extension no table knows
// count toward the limit but not toward any language.
func (d *Detector) Detect() (*Census, error) {
	root := d.provider.GetBasePath()
	limit := d.opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	census := &Census{Counts: make(map[string]int)}
	err := d.walk(root, root, limit, census)
	if err != nil && !errors.Is(err, errLimitReached) {
		return nil, err
	}

	slog.Debug("Language census completed",
		"root", root,
		"files_seen", census.FilesSeen,
		"languages", len(census.Counts),
		"truncated", census.Truncated)

	return census, nil
}

func (d *Detector) walk(root, dirPath string, limit int, census *Census) error {
	files, err := d.provider.ListDir(dirPath)
	if err != nil {
		if dirPath == root {
			return err
		}
		slog.Debug("Skipping unreadable directory", "path", dirPath, "error", err)
		return nil
	}

	for _, file := range files {
		switch file.Type {
		case types.FileTypeSymlink:
			continue

		case types.FileTypeDir:
			if d.isExcluded(file.Name, file.Path, root) {
				continue
			}
			if err := d.walk(root, file.Path, limit, census); err != nil {
				return err
			}

		case types.FileTypeFile:
			if d.isExcluded(file.Name, file.Path, root) {
				continue
			}
			if census.FilesSeen >= limit {
				census.Truncated = true
				return errLimitReached
			}
			census.FilesSeen++
			if lang := languageForFile(file.Name); lang != "" {
				census.Counts[lang]++
			}
		}
	}

	return nil
}

func (d *Detector) isExcluded(name, fullPath, root string) bool {
	if len(d.opts.ExcludePatterns) == 0 {
		return false
	}

	relPath, err := filepath.Rel(root, fullPath)
	if err != nil {
		relPath = name
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range d.opts.ExcludePatterns {
		// Try glob match against relative path
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}

		// Also try matching just the name
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}

		// Fallback to simple name match
		if strings.EqualFold(name, pattern) {
			return true
		}
	}

	return false
}

func languageForFile(name string) string {
	_, ext := util.SplitExt(name)
	if ext == "" {
		return ""
	}
	ext = strings.ToLower(ext)

	if lang := classify.LanguageForExt(ext); lang != classify.Unknown {
		return lang
	}
	if lang, ok := ExtraExtensions[ext]; ok {
		return lang
	}
	return ""
}

// AutoEnable fills a nil enabled list with every language the census saw.
// An explicit list is returned unchanged, even when it is empty.
func AutoEnable(enabled []string, census *Census) []string {
	if enabled != nil {
		return enabled
	}
	return census.Languages()
}

// IncludePatterns derives scanner include patterns for the given languages
// from the catalogue's extension table plus the census-only extras. The
// result is sorted and duplicate-free.
func IncludePatterns(languages []string) []string {
	want := make(map[string]bool, len(languages))
	for _, lang := range languages {
		want[lang] = true
	}

	seen := make(map[string]bool)
	var patterns []string

	add := func(ext, lang string) {
		if !want[lang] {
			return
		}
		pattern := "*" + ext
		if !seen[pattern] {
			seen[pattern] = true
			patterns = append(patterns, pattern)
		}
	}

	for ext, lang := range classify.Extensions() {
		add(ext, lang)
	}
	for ext, lang := range ExtraExtensions {
		add(ext, lang)
	}

	sort.Strings(patterns)
	return patterns
}
