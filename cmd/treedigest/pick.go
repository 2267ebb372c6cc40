package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hayeah/treedigest/digest"
	"github.com/hayeah/treedigest/internal/store"
)

// PickCmd contains the arguments for the 'pick' subcommand
type PickCmd struct {
	Output         string `arg:"-o,--output" help:"Write the digest to this file instead of stdout"`
	Copy           bool   `arg:"-c,--copy" help:"Copy the digest to the clipboard instead of stdout"`
	Gitignore      bool   `arg:"--gitignore" help:"Also hide paths matched by gitignore rules"`
	TokenEstimator string `arg:"--token-estimator" help:"Token count estimator to use: 'simple' (size/4) or 'tiktoken'" default:"simple"`
	State          string `arg:"--state" help:"Path to the selection state database (default: <root>/.treedigest.db)"`
	NoState        bool   `arg:"--no-state" help:"Do not load or save selection state"`
	Verbose        bool   `arg:"-v,--verbose" help:"Enable debug logging"`
	Root           string `arg:"positional" help:"Directory to browse (default: current directory)"`
}

// PickRunner runs the interactive checkbox tree and generates the
// digest from the confirmed selection.
type PickRunner struct {
	Args  PickCmd
	Store *store.Store // nil when state is disabled
	*session
}

// NewPickRunner creates and initializes a new PickRunner
func NewPickRunner(cmdArgs PickCmd) (*PickRunner, error) {
	sess, err := newSession(cmdArgs.Root, cmdArgs.Gitignore, cmdArgs.TokenEstimator, cmdArgs.Verbose)
	if err != nil {
		return nil, err
	}

	r := &PickRunner{Args: cmdArgs, session: sess}

	if !cmdArgs.NoState {
		statePath := cmdArgs.State
		if statePath == "" {
			statePath = filepath.Join(sess.Root, ".treedigest.db")
		}
		r.Store, err = store.Open(statePath)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Run executes the pick subcommand
func (r *PickRunner) Run() error {
	if r.Store != nil {
		defer r.Store.Close()

		checked, err := r.Store.Load(r.Root)
		if err != nil {
			return err
		}
		if len(checked) > 0 {
			r.Tree.Restore(checked)
			r.Logger.Debug("restored selection", zap.Int("paths", len(checked)))
		}
	}

	result, err := selectFilesInteractively(r.Tree, r.FS, r.Estimator)
	if err != nil {
		return err
	}
	if !result.Confirmed {
		fmt.Fprintln(os.Stderr, "Selection aborted.")
		return nil
	}

	doc, err := r.Collector.Generate(r.Tree, r.Root)
	if err != nil {
		if errors.Is(err, digest.ErrNoSelection) {
			fmt.Fprintln(os.Stderr, "Warning: no files selected, nothing to generate.")
			return nil
		}
		return err
	}

	output := r.Args.Output
	if result.OutputFile != "" {
		output = result.OutputFile
	}
	if err := r.writeDigest(doc, output, r.Args.Copy); err != nil {
		return err
	}

	if r.Store != nil {
		if err := r.Store.Save(r.Root, r.Tree.Snapshot()); err != nil {
			return err
		}
		r.Logger.Debug("saved selection", zap.Int("paths", len(r.Tree.Snapshot())))
	}
	return nil
}
