package scanner

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"log/slog"

	"github.com/petrarca/file-summary/internal/progress"
	"github.com/petrarca/file-summary/internal/provider"
	"github.com/petrarca/file-summary/internal/types"
	"github.com/petrarca/file-summary/internal/util"
)

// ErrInvalidRoot is returned when the scan root is missing or not a directory.
// It is raised before any traversal starts.
var ErrInvalidRoot = errors.New("invalid scan root")

// Filters controls which files a scan returns.
//
// Include and exclude patterns match file names only, never paths. A pattern
// starting with '*' matches as a suffix, one ending in '*' matches as a
// prefix, anything else must match the name exactly. ExcludeDirs holds
// literal directory base names pruned before descent.
type Filters struct {
	IncludePatterns []string
	ExcludePatterns []string
	ExcludeDirs     []string
}

// Scanner walks a directory tree and collects the files that pass the
// configured filters. Symlinks are never followed: symlinked files are
// skipped and symlinked directories are not descended into.
type Scanner struct {
	provider types.Provider
	filters  Filters
	progress *progress.Progress
}

// NewScanner creates a scanner rooted at path on the local file system.
func NewScanner(path string, filters Filters) (*Scanner, error) {
	return NewScannerWithProgress(path, filters, nil)
}

// NewScannerWithProgress creates a scanner with a progress reporter attached.
func NewScannerWithProgress(path string, filters Filters, prog *progress.Progress) (*Scanner, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root %s: %w", path, err)
	}
	return NewScannerWithProvider(provider.NewFSProvider(absPath), filters, prog), nil
}

// NewScannerWithProvider creates a scanner on top of an arbitrary provider.
// Used by tests and by callers that scan something other than the local disk.
func NewScannerWithProvider(p types.Provider, filters Filters, prog *progress.Progress) *Scanner {
	if prog == nil {
		prog = progress.Discard()
	}
	return &Scanner{
		provider: p,
		filters:  filters,
		progress: prog,
	}
}

// Scan walks the tree under the provider's base path and returns all matching
// files sorted by absolute path. The ordering is independent of how the
// underlying platform enumerates directories.
func (s *Scanner) Scan() ([]types.FileEntry, error) {
	root := s.provider.GetBasePath()

	exists, err := s.provider.Exists(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: path does not exist: %s", ErrInvalidRoot, root)
	}
	isDir, err := s.provider.IsDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidRoot, root)
	}

	s.progress.ScanStart(root, s.filters.IncludePatterns, s.filters.ExcludeDirs)
	start := time.Now()

	var entries []types.FileEntry
	dirCount := 0
	if err := s.recurse(root, &entries, &dirCount); err != nil {
		return nil, err
	}

	// Enumeration order differs between platforms and providers; sort so the
	// catalogue comes out identical everywhere.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	s.progress.ScanComplete(len(entries), dirCount, time.Since(start))
	slog.Debug("Scan completed", "files", len(entries), "directories", dirCount, "duration", time.Since(start))

	return entries, nil
}

// recurse processes one directory. A listing failure on the root propagates;
// failures on subdirectories are logged and skipped so one unreadable
// directory does not abort the whole scan.
func (s *Scanner) recurse(dirPath string, entries *[]types.FileEntry, dirCount *int) error {
	s.progress.EnterDirectory(dirPath)
	defer s.progress.LeaveDirectory(dirPath)

	files, err := s.provider.ListDir(dirPath)
	if err != nil {
		return err
	}
	*dirCount++
	slog.Debug("Listed directory", "path", dirPath, "entry_count", len(files))

	for _, file := range files {
		switch file.Type {
		case types.FileTypeSymlink:
			s.progress.Skipped(file.Path, "symlink")

		case types.FileTypeDir:
			if s.isExcludedDir(file.Name) {
				s.progress.Skipped(file.Path, "excluded directory")
				continue
			}
			if err := s.recurse(file.Path, entries, dirCount); err != nil {
				slog.Debug("Skipping unreadable directory", "path", file.Path, "error", err)
				s.progress.Skipped(file.Path, "unreadable")
			}

		case types.FileTypeFile:
			if s.matchFile(file.Name) {
				*entries = append(*entries, s.newEntry(file))
			}
		}
	}

	return nil
}

// matchFile applies include patterns first, then exclude patterns. An empty
// include set means include everything; exclusion wins over inclusion.
func (s *Scanner) matchFile(name string) bool {
	if len(s.filters.IncludePatterns) > 0 && !matchAny(name, s.filters.IncludePatterns) {
		return false
	}
	if len(s.filters.ExcludePatterns) > 0 && matchAny(name, s.filters.ExcludePatterns) {
		return false
	}
	return true
}

func (s *Scanner) isExcludedDir(name string) bool {
	for _, excluded := range s.filters.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

func (s *Scanner) newEntry(file types.File) types.FileEntry {
	relPath, err := filepath.Rel(s.provider.GetBasePath(), file.Path)
	if err != nil {
		relPath = file.Path
	}

	_, ext := util.SplitExt(file.Name)

	return types.FileEntry{
		Path:    file.Path,
		RelPath: filepath.ToSlash(relPath),
		Name:    file.Name,
		Ext:     strings.ToLower(ext),
	}
}

func matchAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchName(name, pattern) {
			return true
		}
	}
	return false
}

// matchName supports a deliberately small pattern language: a leading '*'
// matches a name suffix, a trailing '*' matches a name prefix, and anything
// else is an exact comparison. No globbing in the middle of a pattern.
func matchName(name, pattern string) bool {
	switch {
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(name, pattern[1:])
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	default:
		return name == pattern
	}
}
