package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hayeah/treedigest/digest"
)

// OutCmd contains the arguments for the 'out' subcommand
type OutCmd struct {
	All            bool     `arg:"-a,--all" help:"Include every file under the root"`
	Select         []string `arg:"--select,separate" help:"File or directory to include (can be specified multiple times; directories include their whole subtree)"`
	Output         string   `arg:"-o,--output" help:"Write the digest to this file instead of stdout"`
	Copy           bool     `arg:"-c,--copy" help:"Copy the digest to the clipboard instead of stdout"`
	Gitignore      bool     `arg:"--gitignore" help:"Also hide paths matched by gitignore rules"`
	TokenEstimator string   `arg:"--token-estimator" help:"Token count estimator to use: 'simple' (size/4) or 'tiktoken'" default:"simple"`
	Verbose        bool     `arg:"-v,--verbose" help:"Enable debug logging"`
	Root           string   `arg:"positional" help:"Directory to digest (default: current directory)"`
}

// OutRunner generates a digest without the interactive picker.
type OutRunner struct {
	Args OutCmd
	*session
}

// NewOutRunner creates and initializes a new OutRunner
func NewOutRunner(cmdArgs OutCmd) (*OutRunner, error) {
	if !cmdArgs.All && len(cmdArgs.Select) == 0 {
		return nil, fmt.Errorf("either --all or --select must be provided")
	}

	sess, err := newSession(cmdArgs.Root, cmdArgs.Gitignore, cmdArgs.TokenEstimator, cmdArgs.Verbose)
	if err != nil {
		return nil, err
	}

	return &OutRunner{Args: cmdArgs, session: sess}, nil
}

// Run executes the out subcommand
func (r *OutRunner) Run() error {
	if r.Args.All {
		if err := r.expandAll(r.Root); err != nil {
			return err
		}
		// flag starts false, so the first toggle-all checks every
		// node discovered above
		r.Tree.ToggleAll()
	} else {
		for _, path := range r.Args.Select {
			n, err := r.discover(path)
			if err != nil {
				return err
			}
			if err := r.Tree.Toggle(n); err != nil {
				return err
			}
			r.Logger.Debug("selected", zap.String("path", n.Path), zap.Bool("dir", n.IsDir()))
		}
	}

	doc, err := r.Collector.Generate(r.Tree, r.Root)
	if err != nil {
		if errors.Is(err, digest.ErrNoSelection) {
			fmt.Fprintln(os.Stderr, "Warning: no files selected, nothing to generate.")
			return nil
		}
		return err
	}

	return r.writeDigest(doc, r.Args.Output, r.Args.Copy)
}
