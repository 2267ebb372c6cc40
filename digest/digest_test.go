package digest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/treedigest/internal/fsx"
	"github.com/hayeah/treedigest/tree"
)

func createTestDirectory(t *testing.T, files map[string]string) (string, *tree.Tree) {
	t.Helper()
	tempDir := t.TempDir()

	for relPath, content := range files {
		path := filepath.Join(tempDir, relPath)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return tempDir, tree.New(tempDir, tree.NewLister(fsx.NewOS(), nil))
}

func TestCollector_NoSelection(t *testing.T) {
	assert := assert.New(t)

	root, tr := createTestDirectory(t, map[string]string{"a.txt": "A"})
	_, err := tr.Expand(root)
	assert.NoError(err)

	c := NewCollector(fsx.NewOS())
	doc, err := c.Generate(tr, root)
	assert.ErrorIs(err, ErrNoSelection)
	assert.Empty(doc)
}

func TestCollector_EndToEnd(t *testing.T) {
	assert := assert.New(t)

	root, tr := createTestDirectory(t, map[string]string{
		"a.txt":                    "X",
		"sub/b.txt":                "Y",
		"node_modules/ignored.txt": "nope",
	})

	nodes, err := tr.Expand(root)
	assert.NoError(err)
	assert.Equal(2, len(nodes), "root has two visible entries")

	aNode, subNode := nodes[0], nodes[1]
	assert.Equal("a.txt", aNode.Name)
	assert.Equal("sub", subNode.Name)

	subNodes, err := tr.Expand(subNode.Path)
	assert.NoError(err)
	assert.Equal(1, len(subNodes))

	assert.NoError(tr.Toggle(aNode))
	assert.NoError(tr.Toggle(subNode)) // propagates to b.txt

	assert.Equal([]string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "sub", "b.txt"),
	}, tr.CheckedFiles())

	c := NewCollector(fsx.NewOS())
	doc, err := c.Generate(tr, root)
	assert.NoError(err)

	assert.Equal("File: a.txt\nX\n\nFile: sub/b.txt\nY\n\n", doc)
	assert.NotContains(doc, "ignored.txt")
}

func TestCollector_PreservesTrailingNewline(t *testing.T) {
	assert := assert.New(t)

	root, tr := createTestDirectory(t, map[string]string{"a.txt": "line\n"})
	nodes, err := tr.Expand(root)
	assert.NoError(err)
	assert.NoError(tr.Toggle(nodes[0]))

	c := NewCollector(fsx.NewOS())
	doc, err := c.Generate(tr, root)
	assert.NoError(err)
	assert.Equal("File: a.txt\nline\n\n", doc)
}

func TestCollector_EmptyFile(t *testing.T) {
	assert := assert.New(t)

	root, tr := createTestDirectory(t, map[string]string{"empty.txt": ""})
	nodes, err := tr.Expand(root)
	assert.NoError(err)
	assert.NoError(tr.Toggle(nodes[0]))

	c := NewCollector(fsx.NewOS())
	doc, err := c.Generate(tr, root)
	assert.NoError(err)
	assert.Equal("File: empty.txt\n\n", doc)
}

func TestCollector_ReadErrorAborts(t *testing.T) {
	assert := assert.New(t)

	root, tr := createTestDirectory(t, map[string]string{
		"a.txt": "A",
		"b.txt": "B",
	})
	nodes, err := tr.Expand(root)
	assert.NoError(err)
	assert.NoError(tr.Toggle(nodes[0]))
	assert.NoError(tr.Toggle(nodes[1]))

	// delete a checked file after selection
	require.NoError(t, os.Remove(filepath.Join(root, "a.txt")))

	c := NewCollector(fsx.NewOS())
	doc, err := c.Generate(tr, root)
	assert.Empty(doc, "no partial document on failure")

	var readErr *ReadError
	assert.ErrorAs(err, &readErr)
	assert.Equal(filepath.Join(root, "a.txt"), readErr.Path)
	assert.ErrorIs(err, os.ErrNotExist)
	assert.NotErrorIs(err, ErrNoSelection)
}
