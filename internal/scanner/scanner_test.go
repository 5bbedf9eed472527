package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/file-summary/internal/provider"
	"github.com/petrarca/file-summary/internal/types"
)

func TestMatchName(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"app.py", "*.py", true},
		{"app.pyc", "*.py", false},
		{"test_app.py", "test_*", true},
		{"app_test.py", "test_*", false},
		{"Makefile", "Makefile", true},
		{"makefile", "Makefile", false},
		// No globbing in the middle of a pattern; the '*' is literal there.
		{"axb", "a*b", false},
		{"a*b", "a*b", true},
		{"ab", "a*", true},
		{"ba", "*a", true},
	}

	for _, tt := range tests {
		got := matchName(tt.name, tt.pattern)
		assert.Equal(t, tt.want, got, "matchName(%q, %q)", tt.name, tt.pattern)
	}
}

func TestScanIncludeThenExclude(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("src/app.py")
	fake.AddFile("src/test_app.py")
	fake.AddFile("src/readme.md")

	scanner := NewScannerWithProvider(fake, Filters{
		IncludePatterns: []string{"*.py"},
		ExcludePatterns: []string{"test_*"},
	}, nil)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src/app.py", entries[0].RelPath)
}

func TestScanEmptyIncludeMeansIncludeAll(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("a.go")
	fake.AddFile("b.md")
	fake.AddFile("c")

	scanner := NewScannerWithProvider(fake, Filters{}, nil)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestScanOrderIndependentOfEnumeration(t *testing.T) {
	build := func(shuffled bool) []types.FileEntry {
		fake := provider.NewFakeProvider()
		fake.AddFile("z/last.py")
		fake.AddFile("a/first.py")
		fake.AddFile("m/middle.py")
		fake.AddFile("root.py")
		if shuffled {
			fake.Shuffle()
		}

		scanner := NewScannerWithProvider(fake, Filters{}, nil)
		entries, err := scanner.Scan()
		require.NoError(t, err)
		return entries
	}

	plain := build(false)
	shuffled := build(true)

	require.Equal(t, plain, shuffled)
	assert.Equal(t, "/a/first.py", plain[0].Path)
	assert.Equal(t, "/m/middle.py", plain[1].Path)
	assert.Equal(t, "/root.py", plain[2].Path)
	assert.Equal(t, "/z/last.py", plain[3].Path)
}

func TestScanSkipsSymlinks(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("real.py")
	fake.AddSymlink("link.py")
	fake.AddSymlink("linked-dir")

	scanner := NewScannerWithProvider(fake, Filters{}, nil)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "real.py", entries[0].Name)

	// Symlinked directories are never descended into.
	assert.NotContains(t, fake.ListedDirs(), "/linked-dir")
}

func TestScanPrunesExcludedDirsBeforeDescent(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("build/generated.c")
	fake.AddFile("src/app.py")

	scanner := NewScannerWithProvider(fake, Filters{
		ExcludeDirs: []string{"build"},
	}, nil)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src/app.py", entries[0].RelPath)

	// Pruned directories are never listed, not post-filtered.
	assert.NotContains(t, fake.ListedDirs(), "/build")
	assert.Contains(t, fake.ListedDirs(), "/src")
}

func TestScanExcludedDirShadowsIncludedFiles(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("vendor/lib.py")
	fake.AddFile("app.py")

	scanner := NewScannerWithProvider(fake, Filters{
		IncludePatterns: []string{"*.py"},
		ExcludeDirs:     []string{"vendor"},
	}, nil)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "app.py", entries[0].RelPath)
}

func TestScanContinuesPastUnreadableSubdir(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("ok/a.py")
	fake.AddFile("ok/b.py")
	fake.FailDir("broken")

	scanner := NewScannerWithProvider(fake, Filters{}, nil)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestScanRootListFailurePropagates(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("a.py")
	fake.FailDir("/")

	scanner := NewScannerWithProvider(fake, Filters{}, nil)

	_, err := scanner.Scan()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRoot)
}

func TestScanInvalidRoot(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		scanner, err := NewScanner(filepath.Join(t.TempDir(), "does-not-exist"), Filters{})
		require.NoError(t, err)

		_, err = scanner.Scan()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRoot)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("root is a file", func(t *testing.T) {
		tempDir := t.TempDir()
		filePath := filepath.Join(tempDir, "plain.txt")
		require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

		scanner, err := NewScanner(filePath, Filters{})
		require.NoError(t, err)

		_, err = scanner.Scan()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRoot)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestScanRealFileSystem(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "src", "App.PY"), []byte("print()"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".gitignore"), []byte("*.log"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(tempDir, "src", "App.PY"), filepath.Join(tempDir, "link.py")))

	scanner, err := NewScanner(tempDir, Filters{})
	require.NoError(t, err)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := make(map[string]types.FileEntry, len(entries))
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	require.Contains(t, byName, "App.PY")
	assert.Equal(t, "src/App.PY", byName["App.PY"].RelPath)
	assert.Equal(t, ".py", byName["App.PY"].Ext)

	// Dotfiles have no extension.
	require.Contains(t, byName, ".gitignore")
	assert.Equal(t, "", byName[".gitignore"].Ext)

	assert.NotContains(t, byName, "link.py")
}

func TestScanEmptyTree(t *testing.T) {
	scanner, err := NewScanner(t.TempDir(), Filters{})
	require.NoError(t, err)

	entries, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
