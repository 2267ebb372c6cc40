// Package digest assembles the checked files of a selection tree into a
// single concatenated document.
package digest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hayeah/treedigest/internal/fsx"
	"github.com/hayeah/treedigest/tree"
)

// ErrNoSelection is returned when generation is invoked with zero
// checked files. It is a user-facing warning, not an I/O failure.
var ErrNoSelection = errors.New("no files selected")

// ReadError reports that a checked file could not be read during
// generation. The whole generation aborts; no partial document is
// produced.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Collector reads the checked files of a tree and writes them out as a
// sequence of per-file blocks. It never persists the result itself;
// that is the caller's job.
type Collector struct {
	fs fsx.FS
}

// NewCollector creates a Collector over the given file system.
func NewCollector(fs fsx.FS) *Collector {
	return &Collector{fs: fs}
}

// Generate returns the assembled document for the tree's checked files,
// with headers relative to root.
func (c *Collector) Generate(t *tree.Tree, root string) (string, error) {
	var sb strings.Builder
	if err := c.WriteTo(&sb, t, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteTo streams the document to w. Files appear in the order the tree
// discovered them. Each block is a header line with the path relative
// to root, the raw file content, and a blank line separator. Content is
// read fully into memory; there is no size limit.
func (c *Collector) WriteTo(w io.Writer, t *tree.Tree, root string) error {
	paths := t.CheckedFiles()
	if len(paths) == 0 {
		return ErrNoSelection
	}

	for _, path := range paths {
		content, err := c.fs.ReadFile(path)
		if err != nil {
			return &ReadError{Path: path, Err: err}
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		fmt.Fprintf(w, "File: %s\n", filepath.ToSlash(relPath))
		w.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
	return nil
}
