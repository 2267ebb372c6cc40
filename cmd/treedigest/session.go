package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/hayeah/treedigest/digest"
	"github.com/hayeah/treedigest/ignore"
	"github.com/hayeah/treedigest/internal/fsx"
	"github.com/hayeah/treedigest/internal/logging"
	"github.com/hayeah/treedigest/internal/tokens"
	"github.com/hayeah/treedigest/tree"
)

// session holds the dependencies shared by the subcommand runners.
type session struct {
	Root      string
	FS        fsx.FS
	Tree      *tree.Tree
	Collector *digest.Collector
	Estimator tokens.Estimator
	Logger    *zap.Logger
}

// newSession wires the file system, lister, tree, and collector for the
// given root directory.
func newSession(root string, useGitignore bool, estimatorName string, verbose bool) (*session, error) {
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root path %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", absRoot)
	}

	logger, err := logging.New(verbose)
	if err != nil {
		return nil, err
	}

	fs := fsx.NewOS()

	var ignorer tree.Ignorer
	if useGitignore {
		matcher, err := ignore.NewMatcher(absRoot)
		if err != nil {
			return nil, err
		}
		ignorer = matcher
	}

	estimator, err := tokens.ForName(estimatorName)
	if err != nil {
		return nil, err
	}

	return &session{
		Root:      absRoot,
		FS:        fs,
		Tree:      tree.New(absRoot, tree.NewLister(fs, ignorer)),
		Collector: digest.NewCollector(fs),
		Estimator: estimator,
		Logger:    logger,
	}, nil
}

// writeDigest delivers the assembled document: to the clipboard, to a
// file, or to stdout. A token summary always goes to stderr.
func (s *session) writeDigest(doc, outputPath string, copyOut bool) error {
	switch {
	case copyOut:
		if err := clipboard.WriteAll(doc); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Output copied to clipboard")
	case outputPath != "":
		if err := s.FS.WriteFile(outputPath, []byte(doc)); err != nil {
			return fmt.Errorf("failed to write digest to %s: %w", outputPath, err)
		}
		fmt.Fprintf(os.Stderr, "Digest written to %s\n", outputPath)
	default:
		fmt.Print(doc)
	}

	fileCount := len(s.Tree.CheckedFiles())
	fmt.Fprintf(os.Stderr, "Digest: %d files, %d tokens\n", fileCount, s.Estimator.Estimate(doc))
	return nil
}

// expandAll materializes the entire tree under dir.
func (s *session) expandAll(dir string) error {
	nodes, err := s.Tree.Expand(dir)
	if err != nil {
		return err
	}
	s.Logger.Debug("expanded directory", zap.String("dir", dir), zap.Int("entries", len(nodes)))
	for _, n := range nodes {
		if n.IsDir() {
			if err := s.expandAll(n.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// discover expands the ancestor chain of path so its node exists, and
// returns it.
func (s *session) discover(path string) (*tree.Node, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", path, err)
	}
	relPath, err := filepath.Rel(s.Root, absPath)
	if err != nil || relPath == "." || strings.HasPrefix(relPath, "..") {
		return nil, fmt.Errorf("path %s is not under root %s", path, s.Root)
	}

	dir := s.Root
	for _, part := range strings.Split(relPath, string(filepath.Separator)) {
		if _, err := s.Tree.Expand(dir); err != nil {
			return nil, err
		}
		dir = filepath.Join(dir, part)
	}

	n := s.Tree.Node(absPath)
	if n == nil {
		return nil, fmt.Errorf("path not found (or ignored): %s", path)
	}
	return n, nil
}
