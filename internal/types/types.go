package types

// File type labels reported by providers. Symlinks are never resolved, so a
// link pointing at a directory still reports as a symlink.
const (
	FileTypeFile    = "file"
	FileTypeDir     = "dir"
	FileTypeSymlink = "symlink"
)

// File represents a single directory entry.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file", "dir" or "symlink"
	Size int64  `json:"size"`
}

// FileEntry is one catalogued file discovered by a scan. Entries are
// immutable once the scan returns them.
type FileEntry struct {
	Path    string // absolute path
	RelPath string // path relative to the scan root, forward slashes
	Name    string // final path component
	Ext     string // lower-cased extension including the dot, "" when none
}

// Provider defines the file system operations a scan needs. Implementations
// report entry types from the link itself, never from its target.
type Provider interface {
	// ListDir returns the contents of a directory
	ListDir(path string) ([]File, error)

	// Exists checks if a file or directory exists
	Exists(path string) (bool, error)

	// IsDir checks if a path is a directory
	IsDir(path string) (bool, error)

	// GetBasePath returns the base path for this provider
	GetBasePath() string
}
