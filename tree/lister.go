package tree

import (
	"fmt"
	"path/filepath"

	"github.com/hayeah/treedigest/internal/fsx"
)

// Entry describes one immediate child of a listed directory.
type Entry struct {
	Name  string
	Path  string // absolute
	IsDir bool
}

// Ignorer decides whether a path should be hidden from listings, on top
// of the built-in exclusions. Used to plug in gitignore matching.
type Ignorer interface {
	Ignored(path string, isDir bool) bool
}

// skippedDirNames are directory names excluded from every listing.
// Exact match only; a regular file with one of these names is kept.
var skippedDirNames = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// Lister returns the immediate entries of a directory, filtering out
// ignored directories. It is read-only and holds no state beyond its
// dependencies.
type Lister struct {
	fs      fsx.FS
	ignorer Ignorer // optional
}

// NewLister creates a Lister over the given file system. ignorer may be
// nil to apply only the built-in directory name exclusions.
func NewLister(fs fsx.FS, ignorer Ignorer) *Lister {
	return &Lister{fs: fs, ignorer: ignorer}
}

// List returns the entries of dir in the order the file system reports
// them. The os-backed FS sorts by filename, which tests rely on; other
// implementations may differ.
func (l *Lister) List(dir string) ([]Entry, error) {
	dirEntries, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir && skippedDirNames[de.Name] {
			continue
		}
		path := filepath.Join(dir, de.Name)
		if l.ignorer != nil && l.ignorer.Ignored(path, de.IsDir) {
			continue
		}
		entries = append(entries, Entry{
			Name:  de.Name,
			Path:  path,
			IsDir: de.IsDir,
		})
	}
	return entries, nil
}
