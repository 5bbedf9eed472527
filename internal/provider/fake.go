package provider

import (
	"fmt"
	"path"
	"sort"

	"github.com/petrarca/file-summary/internal/types"
)

// FakeProvider implements the Provider interface for testing. Paths are
// rooted at "/" and parent directories are registered implicitly. Listings
// are returned in insertion order unless Shuffle reorders them, so tests can
// exercise enumeration-order independence.
type FakeProvider struct {
	dirs    map[string][]types.File
	failing map[string]bool
	calls   []string
}

// NewFakeProvider creates a new fake provider
func NewFakeProvider() *FakeProvider {
	p := &FakeProvider{
		dirs:    make(map[string][]types.File),
		failing: make(map[string]bool),
	}
	p.dirs["/"] = []types.File{}
	return p
}

// AddFile adds a regular file, creating missing parent directories.
func (p *FakeProvider) AddFile(filePath string) {
	p.add(filePath, types.FileTypeFile)
}

// AddDir adds an empty directory, creating missing parents.
func (p *FakeProvider) AddDir(dirPath string) {
	dirPath = path.Clean("/" + dirPath)
	p.ensureDir(dirPath)
}

// AddSymlink adds a symlink entry. The target is irrelevant: providers
// report the link itself.
func (p *FakeProvider) AddSymlink(linkPath string) {
	p.add(linkPath, types.FileTypeSymlink)
}

// FailDir makes ListDir return an error for the given directory.
func (p *FakeProvider) FailDir(dirPath string) {
	dirPath = path.Clean("/" + dirPath)
	p.ensureDir(dirPath)
	p.failing[dirPath] = true
}

// ListedDirs returns the directories ListDir was called with, in order.
func (p *FakeProvider) ListedDirs() []string {
	return p.calls
}

// Shuffle reorders every directory listing into descending name order to
// simulate a platform with a different enumeration order.
func (p *FakeProvider) Shuffle() {
	for dir, files := range p.dirs {
		sort.Slice(files, func(i, j int) bool {
			return files[i].Name > files[j].Name
		})
		p.dirs[dir] = files
	}
}

func (p *FakeProvider) add(filePath, fileType string) {
	filePath = path.Clean("/" + filePath)
	dir := path.Dir(filePath)
	p.ensureDir(dir)
	p.dirs[dir] = append(p.dirs[dir], types.File{
		Name: path.Base(filePath),
		Path: filePath,
		Type: fileType,
	})
}

// ensureDir registers dirPath and all ancestors, adding each directory to
// its parent's listing exactly once.
func (p *FakeProvider) ensureDir(dirPath string) {
	if _, ok := p.dirs[dirPath]; ok {
		return
	}
	p.dirs[dirPath] = []types.File{}
	if dirPath == "/" {
		return
	}

	parent := path.Dir(dirPath)
	p.ensureDir(parent)
	p.dirs[parent] = append(p.dirs[parent], types.File{
		Name: path.Base(dirPath),
		Path: dirPath,
		Type: types.FileTypeDir,
	})
}

// ListDir returns the contents of a directory
func (p *FakeProvider) ListDir(dirPath string) ([]types.File, error) {
	p.calls = append(p.calls, dirPath)
	if p.failing[dirPath] {
		return nil, fmt.Errorf("listing failed: %s", dirPath)
	}
	files, exists := p.dirs[dirPath]
	if !exists {
		return nil, fmt.Errorf("no such directory: %s", dirPath)
	}
	return files, nil
}

// Exists checks if a file or directory exists
func (p *FakeProvider) Exists(checkPath string) (bool, error) {
	if _, ok := p.dirs[checkPath]; ok {
		return true, nil
	}
	for _, files := range p.dirs {
		for _, file := range files {
			if file.Path == checkPath {
				return true, nil
			}
		}
	}
	return false, nil
}

// IsDir checks if a path is a directory
func (p *FakeProvider) IsDir(checkPath string) (bool, error) {
	_, exists := p.dirs[checkPath]
	return exists, nil
}

// GetBasePath returns the base path for this provider
func (p *FakeProvider) GetBasePath() string {
	return "/"
}
