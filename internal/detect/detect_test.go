package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/file-summary/internal/provider"
)

func TestDetectCensus(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("app.py")
	fake.AddFile("lib/util.py")
	fake.AddFile("web/app.js")
	fake.AddFile("boot.s")
	fake.AddFile("script.pl")
	fake.AddFile("README")
	fake.AddFile("data.xyz")

	census, err := NewWithProvider(fake, Options{}).Detect()
	require.NoError(t, err)

	assert.Equal(t, 7, census.FilesSeen)
	assert.False(t, census.Truncated)
	assert.Equal(t, map[string]int{
		"Python":     2,
		"JavaScript": 1,
		"ASM":        1,
		"Perl":       1,
	}, census.Counts)
	assert.Equal(t, []string{"ASM", "JavaScript", "Perl", "Python"}, census.Languages())
}

func TestDetectLimit(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("a.py")
	fake.AddFile("b.py")
	fake.AddFile("c.py")
	fake.AddFile("d.py")
	fake.AddFile("e.py")

	census, err := NewWithProvider(fake, Options{Limit: 3}).Detect()
	require.NoError(t, err)
	assert.Equal(t, 3, census.FilesSeen)
	assert.True(t, census.Truncated)
}

func TestDetectLimitExactFitIsNotTruncated(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("a.py")
	fake.AddFile("b.py")
	fake.AddFile("c.py")

	census, err := NewWithProvider(fake, Options{Limit: 3}).Detect()
	require.NoError(t, err)
	assert.Equal(t, 3, census.FilesSeen)
	assert.False(t, census.Truncated)
}

func TestDetectExcludePatterns(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("node_modules/x.js")
	fake.AddFile("src/app.min.js")
	fake.AddFile("vendor/y.py")
	fake.AddFile("src/app.py")

	census, err := NewWithProvider(fake, Options{
		ExcludePatterns: []string{"node_modules", "**/*.min.js", "VENDOR"},
	}).Detect()
	require.NoError(t, err)

	assert.Equal(t, 1, census.FilesSeen)
	assert.Equal(t, map[string]int{"Python": 1}, census.Counts)
}

func TestDetectSkipsSymlinks(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("real.py")
	fake.AddSymlink("link.py")

	census, err := NewWithProvider(fake, Options{}).Detect()
	require.NoError(t, err)
	assert.Equal(t, 1, census.FilesSeen)
	assert.Equal(t, map[string]int{"Python": 1}, census.Counts)
}

func TestDetectContinuesPastUnreadableSubdir(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("ok/a.py")
	fake.FailDir("broken")

	census, err := NewWithProvider(fake, Options{}).Detect()
	require.NoError(t, err)
	assert.Equal(t, 1, census.FilesSeen)
}

func TestDetectRootFailurePropagates(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.FailDir("/")

	_, err := NewWithProvider(fake, Options{}).Detect()
	assert.Error(t, err)
}

func TestDetectRealFileSystem(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "src", "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "setup.py"), []byte(""), 0o644))

	detector, err := New(tempDir, Options{})
	require.NoError(t, err)

	census, err := detector.Detect()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 1, "Python": 1}, census.Counts)
}

func TestAutoEnable(t *testing.T) {
	census := &Census{Counts: map[string]int{"Python": 3, "Go": 1}}

	// nil means auto-detect
	assert.Equal(t, []string{"Go", "Python"}, AutoEnable(nil, census))

	// An explicit list is never touched, even when empty.
	assert.Equal(t, []string{}, AutoEnable([]string{}, census))
	assert.Equal(t, []string{"Rust"}, AutoEnable([]string{"Rust"}, census))
}

func TestIncludePatterns(t *testing.T) {
	tests := []struct {
		languages []string
		want      []string
	}{
		{[]string{"Python"}, []string{"*.py"}},
		{[]string{"TypeScript"}, []string{"*.ts", "*.tsx"}},
		{[]string{"JavaScript"}, []string{"*.js", "*.jsx"}},
		{[]string{"Perl"}, []string{"*.pl", "*.pm"}},
		{[]string{"ASM"}, []string{"*.asm", "*.s"}},
		{[]string{"Python", "Go"}, []string{"*.go", "*.py"}},
		{[]string{"NoSuchLanguage"}, nil},
		{nil, nil},
	}

	for _, tt := range tests {
		got := IncludePatterns(tt.languages)
		assert.Equal(t, tt.want, got, "IncludePatterns(%v)", tt.languages)
	}
}
