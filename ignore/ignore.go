// Package ignore provides gitignore-based filtering for directory
// listings.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher hides paths excluded by the gitignore patterns found under a
// root directory. It satisfies the tree package's Ignorer interface.
type Matcher struct {
	matcher  gitignore.Matcher
	rootPath string
}

// NewMatcher reads the gitignore patterns under rootPath and builds a
// Matcher for them.
func NewMatcher(rootPath string) (*Matcher, error) {
	fs := osfs.New(rootPath)
	patterns, err := gitignore.ReadPatterns(fs, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
	}

	return &Matcher{
		matcher:  gitignore.NewMatcher(patterns),
		rootPath: rootPath,
	}, nil
}

// Ignored reports whether path should be hidden according to the
// gitignore rules. Paths outside the root are never ignored.
func (m *Matcher) Ignored(path string, isDir bool) bool {
	relPath, err := filepath.Rel(m.rootPath, path)
	if err != nil || relPath == "." || strings.HasPrefix(relPath, "..") {
		return false
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return m.matcher.Match(parts, isDir)
}
