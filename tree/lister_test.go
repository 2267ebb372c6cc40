package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/treedigest/internal/fsx"
)

func TestLister_SortedOrder(t *testing.T) {
	assert := assert.New(t)

	root := createTestDirectory(t, map[string]string{
		"c.txt":     "C",
		"a.txt":     "A",
		"sub/b.txt": "B",
	})

	l := NewLister(fsx.NewOS(), nil)
	entries, err := l.List(root)
	assert.NoError(err)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Name
	}
	assert.Equal([]string{"a.txt", "c.txt", "sub"}, got)
}

func TestLister_ExcludesDirectoriesByExactName(t *testing.T) {
	assert := assert.New(t)

	root := createTestDirectory(t, map[string]string{
		"node_modules/x.txt":   "nope",
		".git/config":          "nope",
		"node_modules2/y.txt":  "kept, name is not an exact match",
		"sub/node_modules/z":   "nope",
		"sub/keep.txt":         "kept",
		"NODE_MODULES/cap.txt": "kept, match is case-sensitive",
	})
	// a regular file named node_modules is not excluded
	require.NoError(t, os.MkdirAll(filepath.Join(root, "other"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "other", "node_modules"), nil, 0644))

	l := NewLister(fsx.NewOS(), nil)
	entries, err := l.List(root)
	assert.NoError(err)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Name
	}
	assert.Equal([]string{"NODE_MODULES", "node_modules2", "other", "sub"}, got)

	fileEntries, err := l.List(filepath.Join(root, "other"))
	assert.NoError(err)
	assert.Len(fileEntries, 1)
	assert.Equal("node_modules", fileEntries[0].Name)
	assert.False(fileEntries[0].IsDir)
}

func TestLister_AbsolutePaths(t *testing.T) {
	assert := assert.New(t)

	root := createTestDirectory(t, map[string]string{"a.txt": "A"})

	l := NewLister(fsx.NewOS(), nil)
	entries, err := l.List(root)
	assert.NoError(err)
	assert.Equal(filepath.Join(root, "a.txt"), entries[0].Path)
}

func TestLister_ErrorPropagates(t *testing.T) {
	assert := assert.New(t)

	l := NewLister(fsx.NewOS(), nil)
	_, err := l.List(filepath.Join(t.TempDir(), "missing"))
	assert.Error(err)
	assert.ErrorIs(err, os.ErrNotExist)
}

type denyAll struct{}

func (denyAll) Ignored(path string, isDir bool) bool { return true }

func TestLister_IgnorerHook(t *testing.T) {
	assert := assert.New(t)

	root := createTestDirectory(t, map[string]string{"a.txt": "A"})

	l := NewLister(fsx.NewOS(), denyAll{})
	entries, err := l.List(root)
	assert.NoError(err)
	assert.Empty(entries)
}
