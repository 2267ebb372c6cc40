package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_LoadUnknownRoot(t *testing.T) {
	assert := assert.New(t)

	s := openTestStore(t)
	checked, err := s.Load("/nowhere")
	assert.NoError(err)
	assert.Empty(checked)
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	assert := assert.New(t)

	s := openTestStore(t)
	checked := map[string]bool{
		"/repo/a.txt":     true,
		"/repo/sub/b.txt": true,
		"/repo/c.txt":     false, // unchecked entries are not persisted
	}
	assert.NoError(s.Save("/repo", checked))

	loaded, err := s.Load("/repo")
	assert.NoError(err)
	assert.Equal(map[string]bool{
		"/repo/a.txt":     true,
		"/repo/sub/b.txt": true,
	}, loaded)
}

func TestStore_SaveReplacesPreviousSelection(t *testing.T) {
	assert := assert.New(t)

	s := openTestStore(t)
	assert.NoError(s.Save("/repo", map[string]bool{"/repo/a.txt": true}))
	assert.NoError(s.Save("/repo", map[string]bool{"/repo/b.txt": true}))

	loaded, err := s.Load("/repo")
	assert.NoError(err)
	assert.Equal(map[string]bool{"/repo/b.txt": true}, loaded)
}

func TestStore_RootsAreIndependent(t *testing.T) {
	assert := assert.New(t)

	s := openTestStore(t)
	assert.NoError(s.Save("/repo1", map[string]bool{"/repo1/a.txt": true}))
	assert.NoError(s.Save("/repo2", map[string]bool{"/repo2/b.txt": true}))

	loaded, err := s.Load("/repo1")
	assert.NoError(err)
	assert.Equal(map[string]bool{"/repo1/a.txt": true}, loaded)
}
